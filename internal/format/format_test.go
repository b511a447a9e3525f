package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/havkom/fishops-bot/internal/format"
)

func TestQuantityKilogramsBelowOneTon(t *testing.T) {
	assert.Equal(t, "999kg", format.Quantity(999, true, language.English))
	assert.Equal(t, "0kg", format.Quantity(0, true, language.English))
	assert.Equal(t, "500kg", format.Quantity(499.6, true, language.English))
}

func TestQuantitySwitchesToTonsAtThousand(t *testing.T) {
	assert.Equal(t, "1 MT", format.Quantity(1000, true, language.English))
	assert.Equal(t, "1.23 MT", format.Quantity(1234, true, language.English))
	assert.Equal(t, "2.5 MT", format.Quantity(2500, true, language.English))
}

func TestQuantityWithoutUnit(t *testing.T) {
	assert.Equal(t, "999", format.Quantity(999, false, language.English))
	assert.Equal(t, "1", format.Quantity(1000, false, language.English))
}

func TestQuantityLocaleGrouping(t *testing.T) {
	// 1,234,567 kg -> 1,234.57 MT with English grouping.
	assert.Equal(t, "1,234.57 MT", format.Quantity(1234567, true, language.English))

	// German swaps the separators but keeps the same magnitude.
	got := format.Quantity(1234567, true, language.German)
	assert.Contains(t, got, "MT")
	assert.NotEqual(t, "1,234.57 MT", got)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "85%", format.Percent(85, language.English))
	assert.Equal(t, "99.9%", format.Percent(99.9, language.English))
	assert.Equal(t, "0%", format.Percent(0, language.English))
}

func TestPercentCollapsesToMultiplier(t *testing.T) {
	assert.Equal(t, "10x", format.Percent(1000, language.English))
	assert.Equal(t, "10.5x", format.Percent(1050, language.English))
	assert.Equal(t, "999.9%", format.Percent(999.9, language.English))
}

func TestTonsRendersSubTonInKilograms(t *testing.T) {
	assert.Equal(t, "500kg", format.Tons(0.5, language.English))
	assert.Equal(t, "85 MT", format.Tons(85, language.English))
}
