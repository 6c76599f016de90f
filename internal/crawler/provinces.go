package crawler

import (
	"regexp"
	"strings"

	"thaijobscraper/internal/textmatch"
)

// provinceEntry pairs an English province name with its Thai form. The slice
// keeps a fixed order so lookups are deterministic; several English spellings
// map to the same Thai province.
type provinceEntry struct {
	EN   string
	Thai string
	re   *regexp.Regexp
}

var provinceTable = buildProvinceTable([][2]string{
	{"amnat charoen", "อำนาจเจริญ"},
	{"ang thong", "อ่างทอง"},
	{"bangkok", "กรุงเทพมหานคร"},
	{"bueng kan", "บึงกาฬ"},
	{"buri ram", "บุรีรัมย์"},
	{"chachoengsao", "ฉะเชิงเทรา"},
	{"chai nat", "ชัยนาท"},
	{"chaiyaphum", "ชัยภูมิ"},
	{"chanthaburi", "จันทบุรี"},
	{"chiang mai", "เชียงใหม่"},
	{"chiang rai", "เชียงราย"},
	{"chon buri", "ชลบุรี"},
	{"chonburi", "ชลบุรี"},
	{"chumphon", "ชุมพร"},
	{"kalasin", "กาฬสินธุ์"},
	{"kamphaeng phet", "กำแพงเพชร"},
	{"kanchanaburi", "กาญจนบุรี"},
	{"khon kaen", "ขอนแก่น"},
	{"krabi", "กระบี่"},
	{"lampang", "ลำปาง"},
	{"lamphun", "ลำพูน"},
	{"loei", "เลย"},
	{"lop buri", "ลพบุรี"},
	{"lopburi", "ลพบุรี"},
	{"mae hong son", "แม่ฮ่องสอน"},
	{"maha sarakham", "มหาสารคาม"},
	{"mukdahan", "มุกดาหาร"},
	{"nakhon nayok", "นครนายก"},
	{"nakhon pathom", "นครปฐม"},
	{"nakhon phanom", "นครพนม"},
	{"nakhon ratchasima", "นครราชสีมา"},
	{"korat", "นครราชสีมา"},
	{"nakhon sawan", "นครสวรรค์"},
	{"nakhon si thammarat", "นครศรีธรรมราช"},
	{"nan", "น่าน"},
	{"narathiwat", "นราธิวาส"},
	{"nong bua lamphu", "หนองบัวลำภู"},
	{"nong khai", "หนองคาย"},
	{"nonthaburi", "นนทบุรี"},
	{"pathum thani", "ปทุมธานี"},
	{"pattani", "ปัตตานี"},
	{"phang nga", "พังงา"},
	{"phatthalung", "พัทลุง"},
	{"phayao", "พะเยา"},
	{"phetchabun", "เพชรบูรณ์"},
	{"phetchaburi", "เพชรบุรี"},
	{"phichit", "พิจิตร"},
	{"phitsanulok", "พิษณุโลก"},
	{"phra nakhon si ayutthaya", "พระนครศรีอยุธยา"},
	{"ayutthaya", "พระนครศรีอยุธยา"},
	{"phrae", "แพร่"},
	{"phuket", "ภูเก็ต"},
	{"prachin buri", "ปราจีนบุรี"},
	{"prachinburi", "ปราจีนบุรี"},
	{"prachuap khiri khan", "ประจวบคีรีขันธ์"},
	{"ranong", "ระนอง"},
	{"ratchaburi", "ราชบุรี"},
	{"rayong", "ระยอง"},
	{"roi et", "ร้อยเอ็ด"},
	{"sa kaeo", "สระแก้ว"},
	{"sakaeo", "สระแก้ว"},
	{"sakon nakhon", "สกลนคร"},
	{"samut prakan", "สมุทรปราการ"},
	{"samut sakhon", "สมุทรสาคร"},
	{"samut songkhram", "สมุทรสงคราม"},
	{"sara buri", "สระบุรี"},
	{"saraburi", "สระบุรี"},
	{"satun", "สตูล"},
	{"sing buri", "สิงห์บุรี"},
	{"sisaket", "ศรีสะเกษ"},
	{"si sa ket", "ศรีสะเกษ"},
	{"songkhla", "สงขลา"},
	{"sukhothai", "สุโขทัย"},
	{"suphan buri", "สุพรรณบุรี"},
	{"surat thani", "สุราษฎร์ธานี"},
	{"surin", "สุรินทร์"},
	{"tak", "ตาก"},
	{"trang", "ตรัง"},
	{"trat", "ตราด"},
	{"ubon ratchathani", "อุบลราชธานี"},
	{"udon thani", "อุดรธานี"},
	{"uthai thani", "อุทัยธานี"},
	{"uttaradit", "อุตรดิตถ์"},
	{"yala", "ยะลา"},
	{"yasothon", "ยโสธร"},
})

func buildProvinceTable(pairs [][2]string) []provinceEntry {
	entries := make([]provinceEntry, 0, len(pairs))
	for _, pair := range pairs {
		entries = append(entries, provinceEntry{
			EN:   pair[0],
			Thai: pair[1],
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(pair[0]) + `\b`),
		})
	}
	return entries
}

var (
	provinceSplitRe  = regexp.MustCompile(`[,|/]`)
	adminPrefixRe    = regexp.MustCompile(`^(เขต|อ\.|อำเภอ|จ\.|จังหวัด)\s*`)
	provincePrefixRe = regexp.MustCompile(`^\s*จ\.\s*`)
)

// thaiProvinceIn returns the first Thai province name contained in the text.
func thaiProvinceIn(text string) string {
	clean := textmatch.CleanText(text)
	if clean == "" {
		return ""
	}
	for _, entry := range provinceTable {
		if strings.Contains(clean, entry.Thai) {
			return entry.Thai
		}
	}
	return ""
}

// guessProvince maps a free-text location to a Thai province name: Thai name
// containment first, then an English word-boundary match, then the tail
// segment of the location with administrative prefixes stripped.
func guessProvince(location string) string {
	clean := textmatch.CleanText(location)
	if clean == "" {
		return ""
	}

	if thai := thaiProvinceIn(clean); thai != "" {
		return thai
	}

	lower := strings.ToLower(clean)
	for _, entry := range provinceTable {
		if entry.re.MatchString(lower) {
			return entry.Thai
		}
	}

	var parts []string
	for _, part := range provinceSplitRe.Split(clean, -1) {
		if p := textmatch.CleanText(part); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(adminPrefixRe.ReplaceAllString(parts[len(parts)-1], ""))
}

// stripProvincePrefix removes the leading "จ." administrative particle.
func stripProvincePrefix(name string) string {
	return strings.TrimSpace(provincePrefixRe.ReplaceAllString(name, ""))
}
