package repository

import (
	"errors"

	"dispatchboard/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardStateRepository struct {
	DB *gorm.DB
}

func NewBoardStateRepository(db *gorm.DB) *BoardStateRepository {
	return &BoardStateRepository{DB: db}
}

// Load returns the persisted blob for the board, or nil on first run.
func (r *BoardStateRepository) Load(boardID string) (*entity.DispatchBoardState, error) {
	var row entity.DispatchBoardState
	if err := r.DB.First(&row, "board_id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Save upserts the whole board state keyed by board id (last write wins).
func (r *BoardStateRepository) Save(boardID, state string) error {
	row := entity.DispatchBoardState{BoardID: boardID, State: state}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "board_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}).Create(&row).Error
}
