package like

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/h662/x-clone-go/internal/apperr"
	"github.com/h662/x-clone-go/internal/comment"
	"github.com/h662/x-clone-go/internal/database"
	"github.com/h662/x-clone-go/internal/post"
)

// SubjectKind selects which content table a like is attached to.
type SubjectKind string

const (
	SubjectPost    SubjectKind = "post"
	SubjectComment SubjectKind = "comment"
)

func (k SubjectKind) column() string {
	if k == SubjectComment {
		return "comment_id"
	}
	return "post_id"
}

// MarkLiked moves a subject into the Liked state and is idempotent:
// repeated calls converge on a single row with is_liked = true. The
// route is named like a toggle but no unlike transition exists.
//
// The find-then-create below is a check-then-act race under concurrent
// first-time likes; the unique subject index plus ON CONFLICT DO NOTHING
// make the loser of the race fall through to the shared update.
func MarkLiked(kind SubjectKind, subjectID uint) (*Like, error) {
	if err := subjectExists(kind, subjectID); err != nil {
		return nil, err
	}

	col := kind.column()

	var existing Like
	err := database.DB.Where(col+" = ?", subjectID).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "Server error.", err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := Like{IsLiked: false}
		if kind == SubjectComment {
			row.CommentID = &subjectID
		} else {
			row.PostID = &subjectID
		}
		if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&row).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Server error.", err)
		}
	}

	// Unconditional, whether the row pre-existed, was just created, or
	// was created by a concurrent call.
	if err := database.DB.Model(&Like{}).
		Where(col+" = ?", subjectID).
		Update("is_liked", true).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Server error.", err)
	}

	var row Like
	if err := database.DB.Where(col+" = ?", subjectID).First(&row).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Server error.", err)
	}
	return &row, nil
}

func subjectExists(kind SubjectKind, subjectID uint) error {
	var err error
	switch kind {
	case SubjectComment:
		err = database.DB.First(&comment.Comment{}, subjectID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Not exist comment.")
		}
	default:
		err = database.DB.First(&post.Post{}, subjectID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Not exist post.")
		}
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Server error.", err)
	}
	return nil
}
