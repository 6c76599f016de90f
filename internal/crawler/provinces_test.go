package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThaiProvinceIn(t *testing.T) {
	assert.Equal(t, "กรุงเทพมหานคร", thaiProvinceIn("เขตบางรัก กรุงเทพมหานคร"))
	assert.Equal(t, "ชลบุรี", thaiProvinceIn("อ.ศรีราชา จ.ชลบุรี"))
	assert.Empty(t, thaiProvinceIn("ใกล้ BTS อโศก"))
	assert.Empty(t, thaiProvinceIn(""))
}

func TestGuessProvince(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"thai name wins", "เมืองพัทยา ชลบุรี", "ชลบุรี"},
		{"english name", "Pathum Wan, Bangkok", "กรุงเทพมหานคร"},
		{"english alternate spelling", "Mueang Chonburi", "ชลบุรี"},
		{"korat alias", "Korat, Thailand", "นครราชสีมา"},
		{"tail segment fallback", "123 หมู่ 4 / นิคมอุตสาหกรรม", "นิคมอุตสาหกรรม"},
		{"admin prefix stripped", "ถนนสุขุมวิท, เขตวัฒนา", "วัฒนา"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guessProvince(tt.in))
		})
	}
}

func TestGuessProvinceNoPartialEnglishMatch(t *testing.T) {
	// "tak" must not fire inside another word
	assert.NotEqual(t, "ตาก", guessProvince("Take charge of reporting"))
}

func TestStripProvincePrefix(t *testing.T) {
	assert.Equal(t, "ชลบุรี", stripProvincePrefix("จ.ชลบุรี"))
	assert.Equal(t, "ชลบุรี", stripProvincePrefix(" จ. ชลบุรี "))
	assert.Equal(t, "กรุงเทพมหานคร", stripProvincePrefix("กรุงเทพมหานคร"))
	assert.Empty(t, stripProvincePrefix(""))
}
