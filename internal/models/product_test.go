package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		quantity int
		want     bool
	}{
		{"unavailable product", Product{IsAvailable: false, StockQuantity: 10}, 1, false},
		{"unlimited stock", Product{IsAvailable: true, StockQuantity: 0}, 999, true},
		{"enough stock", Product{IsAvailable: true, StockQuantity: 5}, 5, true},
		{"not enough stock", Product{IsAvailable: true, StockQuantity: 5}, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.CheckAvailability(tt.quantity))
		})
	}
}

func TestFormattedPrice(t *testing.T) {
	p := Product{Price: 49.9}
	assert.Equal(t, "49.90 €", p.FormattedPrice())
}

func TestTechnologyList(t *testing.T) {
	work := Portfolio{Technologies: "Illustrator, Photoshop ,Figma"}
	assert.Equal(t, []string{"Illustrator", "Photoshop", "Figma"}, work.TechnologyList())

	empty := Portfolio{}
	assert.Empty(t, empty.TechnologyList())
}
