package models

// Snapshot is the full persisted state of the restaurant: the four entity
// collections as ordered sequences. It is the export/import format and the
// layout mirrored into redis, one key per collection.
type Snapshot struct {
	MenuItems  []MenuItem  `json:"menu_items"`
	StockItems []StockItem `json:"stock_items"`
	Tables     []Table     `json:"tables"`
	Orders     []Order     `json:"orders"`
}
