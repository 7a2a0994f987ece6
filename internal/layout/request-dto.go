package layout

type CategoryInput struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"min=0"`
	ColorTag    string   `json:"color_tag"`
	Rows        []string `json:"rows" binding:"required,min=1"`
	SeatsPerRow int      `json:"seats_per_row" binding:"required"`
	AisleAfter  []int    `json:"aisle_after"`
}

func (i CategoryInput) toConfig() CategoryConfig {
	return CategoryConfig{
		Name:        i.Name,
		Price:       i.Price,
		ColorTag:    i.ColorTag,
		Rows:        i.Rows,
		SeatsPerRow: i.SeatsPerRow,
		AisleAfter:  i.AisleAfter,
	}
}

type ReplaceCategoriesRequest struct {
	Categories []CategoryInput `json:"categories" binding:"required,dive"`
}

type PreviewLayoutRequest struct {
	Categories []CategoryInput `json:"categories" binding:"required,dive"`
}

type ReconcileSelectionRequest struct {
	SelectedSeatIDs []string `json:"selected_seat_ids"`
	MaxSelectable   int      `json:"max_selectable" binding:"omitempty,min=1"`
}
