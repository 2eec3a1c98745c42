package videos

import (
	"time"

	"gorm.io/gorm"
)

const PageSize = 10

type Video struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	YouTubeID    string `gorm:"column:youtube_id;unique;not null" json:"youtube_id"`
	Title        string `json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	VideoURL     string `gorm:"column:url_video" json:"url_video"`
	ThumbnailURL string `gorm:"column:url_thumbnail" json:"url_thumbnail"`
	ChannelTitle string `json:"channel_title"`
	Category     string `json:"category"`
	PublishedAt  string `json:"published_at"`
	Views        int64  `gorm:"default:0" json:"views"`
	Likes        int64  `gorm:"default:0" json:"likes"`
	Comments     int64  `gorm:"default:0" json:"comments"`
	UploadedBy   uint   `gorm:"index" json:"uploaded_by"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Totals — агрегаты по выборке, считаются той же фильтрацией, что и листинг.
type Totals struct {
	Videos   int64 `json:"total_videos"`
	Views    int64 `json:"total_views"`
	Likes    int64 `json:"total_likes"`
	Comments int64 `json:"total_comments"`
}

// ListFilter описывает выборку /mis-videos/: только свои видео,
// поиск по подстроке заголовка и точное совпадение категории.
type ListFilter struct {
	UserID   uint
	Query    string
	Category string
	Page     int
}

func (f ListFilter) apply(db *gorm.DB) *gorm.DB {
	q := db.Model(&Video{}).Where("uploaded_by = ?", f.UserID)
	if f.Query != "" {
		q = q.Where("title ILIKE ?", "%"+f.Query+"%")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	return q
}

// List возвращает страницу видео (10 на страницу) и агрегаты по всей выборке.
func List(db *gorm.DB, f ListFilter) ([]Video, Totals, error) {
	totals, err := aggregate(f.apply(db))
	if err != nil {
		return nil, Totals{}, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}

	var list []Video
	err = f.apply(db).
		Order("published_at DESC").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&list).Error
	if err != nil {
		return nil, Totals{}, err
	}
	return list, totals, nil
}

// ListAll — сводка для главной страницы: все видео, новые сверху.
func ListAll(db *gorm.DB) ([]Video, Totals, error) {
	totals, err := aggregate(db.Model(&Video{}))
	if err != nil {
		return nil, Totals{}, err
	}

	var list []Video
	if err := db.Order("published_at DESC").Find(&list).Error; err != nil {
		return nil, Totals{}, err
	}
	return list, totals, nil
}

func aggregate(q *gorm.DB) (Totals, error) {
	var t Totals
	err := q.
		Select("COUNT(*) AS videos, COALESCE(SUM(views),0) AS views, COALESCE(SUM(likes),0) AS likes, COALESCE(SUM(comments),0) AS comments").
		Scan(&t).Error
	return t, err
}

func GetByID(db *gorm.DB, id uint) (*Video, error) {
	var video Video
	if err := db.First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}
