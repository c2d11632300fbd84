package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/summitlink/internal/db"
	"github.com/summitlink/internal/phone"
	"github.com/summitlink/internal/storage"
	"gorm.io/gorm"
)

var (
	// ErrContactNotFound 在指定的资料记录不存在时返回
	ErrContactNotFound = errors.New("contact not found")
	// ErrContactInvalidInput 在必填字段缺失或类别非法时返回
	ErrContactInvalidInput = errors.New("invalid contact input")
	// ErrContactInvalidPhone 在电话号码未通过校验时返回
	ErrContactInvalidPhone = errors.New("invalid contact phone")
	// ErrStatusInvalid 在过滤器取值不在三态之内时返回
	ErrStatusInvalid = errors.New("invalid contact status")
)

// Status 是资料记录生命周期的闭合三态。
// 数据库里的 approved/rejected 两个布尔列只是它的序列化细节，
// 经由这里的映射读写，非法的双 true 状态在构造上不可能出现。
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus 解析过滤器取值，空串回退到 pending
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case "", StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrStatusInvalid, raw)
	}
}

// StatusOf 从两个布尔列还原生命周期状态
func StatusOf(contact db.Contact) Status {
	switch {
	case contact.Approved:
		return StatusApproved
	case contact.Rejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

// flags 返回状态对应的两列取值
func (s Status) flags() (approved, rejected bool) {
	switch s {
	case StatusApproved:
		return true, false
	case StatusRejected:
		return false, true
	default:
		return false, false
	}
}

const (
	// 内嵌图片引用的字符数上限，超出后改存占位图地址
	maxInlinePhotoChars = 1_000_000
	// PlaceholderPhotoURL 在内嵌图片超限时顶替照片引用
	PlaceholderPhotoURL = "https://placehold.co/400x400/6abcff/ffffff?text=Photo+Too+Large"
)

// 提交内容在入库前统一过一遍严格的净化策略，去掉任何标记
var inputSanitizer = bluemonday.StrictPolicy()

// ContactService 负责资料记录的创建、过滤查询与审核状态流转
type ContactService struct {
	db *gorm.DB
}

// NewContactService 构造 ContactService
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// ContactInput 描述提交表单收集的全部字段。
// 未启用的联系渠道由 handler 置空，空字段入库为空串而不会出现在公开展示中。
type ContactInput struct {
	Category  string
	Name      string
	Title     string
	Bio       string
	Location  string
	Notes     string
	PhotoURL  string
	Instagram string
	Facebook  string
	LinkedIn  string
	YouTube   string
	Twitter   string
	Email     string
	Website   string
	Phone     string
}

// Create 新建一条资料记录，生命周期强制为 pending。
// 姓名与头衔必填；电话非空时必须通过校验；
// 内嵌图片引用超过上限时改存占位图地址。
func (s *ContactService) Create(input ContactInput) (*db.Contact, error) {
	name := strings.TrimSpace(input.Name)
	title := strings.TrimSpace(input.Title)
	if name == "" || title == "" {
		return nil, ErrContactInvalidInput
	}

	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}

	phoneValue := strings.TrimSpace(input.Phone)
	if phoneValue != "" && !phone.Validate(phoneValue) {
		return nil, ErrContactInvalidPhone
	}

	photoURL := strings.TrimSpace(input.PhotoURL)
	if strings.HasPrefix(photoURL, "data:") && len(photoURL) > maxInlinePhotoChars {
		photoURL = PlaceholderPhotoURL
	}

	contact := db.Contact{
		Category:  category,
		Name:      inputSanitizer.Sanitize(name),
		Title:     inputSanitizer.Sanitize(title),
		Bio:       inputSanitizer.Sanitize(strings.TrimSpace(input.Bio)),
		Location:  inputSanitizer.Sanitize(strings.TrimSpace(input.Location)),
		Notes:     inputSanitizer.Sanitize(strings.TrimSpace(input.Notes)),
		PhotoURL:  photoURL,
		Instagram: strings.TrimSpace(input.Instagram),
		Facebook:  strings.TrimSpace(input.Facebook),
		LinkedIn:  strings.TrimSpace(input.LinkedIn),
		YouTube:   strings.TrimSpace(input.YouTube),
		Twitter:   strings.TrimSpace(input.Twitter),
		Email:     strings.TrimSpace(input.Email),
		Website:   strings.TrimSpace(input.Website),
		Phone:     phoneValue,
		Approved:  false,
		Rejected:  false,
	}

	if err := s.db.Create(&contact).Error; err != nil {
		return nil, fmt.Errorf("create contact: %w", storage.Classify(err))
	}

	return &contact, nil
}

// List 返回匹配指定生命周期状态的记录，按创建时间倒序
func (s *ContactService) List(status Status) ([]db.Contact, error) {
	query := s.db.Model(&db.Contact{})
	switch status {
	case StatusPending:
		query = query.Where("approved = ? AND rejected = ?", false, false)
	case StatusApproved:
		query = query.Where("approved = ?", true)
	case StatusRejected:
		query = query.Where("rejected = ?", true)
	default:
		return nil, fmt.Errorf("%w: %q", ErrStatusInvalid, status)
	}

	var contacts []db.Contact
	if err := query.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("list contacts: %w", storage.Classify(err))
	}
	return contacts, nil
}

// Get 根据主键获取一条记录
func (s *ContactService) Get(id uint) (*db.Contact, error) {
	var contact db.Contact
	if err := s.db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact: %w", storage.Classify(err))
	}
	return &contact, nil
}

// Approve 将记录转入 approved 状态，同时清掉 rejected 标记
func (s *ContactService) Approve(id uint) (*db.Contact, error) {
	return s.transition(id, StatusApproved)
}

// Reject 将记录转入 rejected 状态，同时清掉 approved 标记。
// 记录只做标记不会删除，便于之后在 rejected 过滤器下复审。
func (s *ContactService) Reject(id uint) (*db.Contact, error) {
	return s.transition(id, StatusRejected)
}

// transition 在一次更新中同时写入两个标记列，保证两者不会同时为 true
func (s *ContactService) transition(id uint, status Status) (*db.Contact, error) {
	contact, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	approved, rejected := status.flags()
	if err := s.db.Model(contact).
		Updates(map[string]interface{}{"approved": approved, "rejected": rejected}).Error; err != nil {
		return nil, fmt.Errorf("update contact status: %w", storage.Classify(err))
	}

	contact.Approved = approved
	contact.Rejected = rejected
	return contact, nil
}

// DirectoryBuckets 按类别分组的公开目录数据
type DirectoryBuckets struct {
	Organizers []db.Contact
	Speakers   []db.Contact
	Delegates  []db.Contact
}

// Directory 拉取全部已通过审核的记录，并按类别分到三个桶里，
// 桶内保持新提交在前的顺序
func (s *ContactService) Directory() (DirectoryBuckets, error) {
	var buckets DirectoryBuckets

	approved, err := s.List(StatusApproved)
	if err != nil {
		return buckets, err
	}

	for _, contact := range approved {
		switch contact.Category {
		case db.CategoryOrganizer:
			buckets.Organizers = append(buckets.Organizers, contact)
		case db.CategorySpeaker:
			buckets.Speakers = append(buckets.Speakers, contact)
		case db.CategoryDelegate:
			buckets.Delegates = append(buckets.Delegates, contact)
		}
	}

	return buckets, nil
}

// normalizeCategory 校验闭合类别枚举，空值回退到 delegate
func normalizeCategory(raw string) (string, error) {
	category := strings.ToLower(strings.TrimSpace(raw))
	switch category {
	case "":
		return db.CategoryDelegate, nil
	case db.CategoryOrganizer, db.CategorySpeaker, db.CategoryDelegate:
		return category, nil
	default:
		return "", ErrContactInvalidInput
	}
}
