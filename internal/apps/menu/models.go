package menu

import (
	"github.com/canteen-labs/canteen-backend/internal/docstore"
)

// DayMenu is one weekday's menu: free-text dish names for the four slots.
// Slot wire names match the documents already in the production store.
type DayMenu struct {
	ID       string `json:"id,omitempty"`
	WeekID   string `json:"weekId"`
	DayIndex int    `json:"dayIndex"` // 0 = Monday .. 6 = Sunday
	Main     string `json:"main"`
	Stir     string `json:"stir"`
	Veg      string `json:"veg"`
	Soup     string `json:"soup"`
}

func DayFromRecord(rec docstore.Record) DayMenu {
	return DayMenu{
		ID:       rec.ID,
		WeekID:   docstore.String(rec.Fields, "weekId"),
		DayIndex: docstore.Int(rec.Fields, "dayIndex"),
		Main:     docstore.String(rec.Fields, "main"),
		Stir:     docstore.String(rec.Fields, "stir"),
		Veg:      docstore.String(rec.Fields, "veg"),
		Soup:     docstore.String(rec.Fields, "soup"),
	}
}

func (d DayMenu) Fields() map[string]any {
	return map[string]any{
		"weekId":   d.WeekID,
		"dayIndex": d.DayIndex,
		"main":     d.Main,
		"stir":     d.Stir,
		"veg":      d.Veg,
		"soup":     d.Soup,
	}
}

// WeekMenu is the full response for one week.
type WeekMenu struct {
	WeekID string    `json:"weekId"`
	Range  string    `json:"range"`
	Days   []DayMenu `json:"days"`
}
