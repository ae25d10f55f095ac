package content

import (
	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

// TagWithCount carries a tag plus how many questions use it.
type TagWithCount struct {
	models.Tag
	QuestionCount int `json:"question_count"`
}

// ListTags searches tags by name, sorted by name or by popularity.
func (s *Service) ListTags(keyword, sortBy string, page, pageSize int) ([]TagWithCount, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	count := s.db.Model(&models.Tag{})
	if keyword != "" {
		count = count.Where("tags.name ILIKE ?", "%"+keyword+"%")
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := s.db.Model(&models.Tag{}).
		Select("tags.*, count(question_tags.question_id) as question_count").
		Joins("LEFT JOIN question_tags ON question_tags.tag_id = tags.id").
		Group("tags.id")
	if keyword != "" {
		q = q.Where("tags.name ILIKE ?", "%"+keyword+"%")
	}

	switch sortBy {
	case "popularity":
		q = q.Order("question_count desc, tags.name asc")
	default:
		q = q.Order("tags.name asc")
	}

	var tags []TagWithCount
	err := q.Offset((page - 1) * pageSize).Limit(pageSize).Scan(&tags).Error
	return tags, int(total), err
}

// GetTag loads one tag by id.
func (s *Service) GetTag(id int) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		return nil, apperror.NotFound("tag.not-found")
	}
	return &tag, nil
}
