package hangul

const (
	syllableBase = 0xAC00
	medialCount  = 21
	finalCount   = 28
)

// Dubeolsik keys in the order of jamoKeys. The first consonantKeys entries
// are consonants and their position equals their choseong index.
const (
	latinKeys     = "rRseEfaqQtTdwWczxvgkoiOjpuPhynbml"
	consonantKeys = 19
)

var jamoKeys = []rune("ㄱㄲㄴㄷㄸㄹㅁㅂㅃㅅㅆㅇㅈㅉㅊㅋㅌㅍㅎㅏㅐㅑㅒㅓㅔㅕㅖㅗㅛㅜㅠㅡㅣ")

var (
	choseong  = []rune{'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
	jungseong = []rune{'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ'}
	// jongseong has no "none" entry; the composed offset is index+1.
	jongseong = []rune{'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
)

type pairRule struct {
	first, second, merged rune
}

var (
	finalRules = []pairRule{
		{'ㄱ', 'ㅅ', 'ㄳ'},
		{'ㄴ', 'ㅈ', 'ㄵ'},
		{'ㄴ', 'ㅎ', 'ㄶ'},
		{'ㄹ', 'ㄱ', 'ㄺ'},
		{'ㄹ', 'ㅁ', 'ㄻ'},
		{'ㄹ', 'ㅂ', 'ㄼ'},
		{'ㄹ', 'ㅅ', 'ㄽ'},
		{'ㄹ', 'ㅌ', 'ㄾ'},
		{'ㄹ', 'ㅍ', 'ㄿ'},
		{'ㄹ', 'ㅎ', 'ㅀ'},
		{'ㅂ', 'ㅅ', 'ㅄ'},
	}
	medialRules = []pairRule{
		{'ㅗ', 'ㅏ', 'ㅘ'},
		{'ㅗ', 'ㅐ', 'ㅙ'},
		{'ㅗ', 'ㅣ', 'ㅚ'},
		{'ㅜ', 'ㅓ', 'ㅝ'},
		{'ㅜ', 'ㅔ', 'ㅞ'},
		{'ㅜ', 'ㅣ', 'ㅟ'},
		{'ㅡ', 'ㅣ', 'ㅢ'},
	}
)

var (
	choseongIndex  = buildIndex(choseong)
	jungseongIndex = buildIndex(jungseong)
	jongseongIndex = buildIndex(jongseong)
)

// keyEntry is what a single keystroke contributes. Consonant keys always
// carry a leading index; ㄸ, ㅃ and ㅉ have no trailing form.
type keyEntry struct {
	lead  slot
	tail  slot
	vowel slot
}

var keyTable = buildKeyTable()

// Cluster tables, keyed by indices so the composer never touches runes.
var (
	// (choseong, choseong) -> jongseong cluster, two consonants typed
	// before any vowel.
	leadClusters = make(map[[2]int]int, len(finalRules))
	// (jongseong, choseong) -> jongseong cluster.
	tailClusters = make(map[[2]int]int, len(finalRules))
	// jongseong cluster -> (retained jongseong, donated choseong).
	clusterSplit = make(map[int][2]int, len(finalRules))
	// (jungseong, jungseong) -> jungseong diphthong.
	vowelClusters = make(map[[2]int]int, len(medialRules))
	// simple jongseong -> the choseong it becomes when donated.
	tailToLead = make(map[int]int, len(jongseong))
)

var jamoSet = buildSet(choseong, jungseong, jongseong)

func init() {
	for _, rule := range finalRules {
		merged := jongseongIndex[rule.merged]
		second := choseongIndex[rule.second]
		leadClusters[[2]int{choseongIndex[rule.first], second}] = merged
		tailClusters[[2]int{jongseongIndex[rule.first], second}] = merged
		clusterSplit[merged] = [2]int{jongseongIndex[rule.first], second}
	}
	for _, rule := range medialRules {
		vowelClusters[[2]int{jungseongIndex[rule.first], jungseongIndex[rule.second]}] = jungseongIndex[rule.merged]
	}
	for i, r := range jongseong {
		if lead, ok := choseongIndex[r]; ok {
			tailToLead[i] = lead
		}
	}
}

func buildKeyTable() map[rune]keyEntry {
	table := make(map[rune]keyEntry, len(jamoKeys))
	for i, key := range []rune(latinKeys) {
		jamo := jamoKeys[i]
		if i < consonantKeys {
			entry := keyEntry{lead: some(i)}
			if tail, ok := jongseongIndex[jamo]; ok {
				entry.tail = some(tail)
			}
			table[key] = entry
			continue
		}
		table[key] = keyEntry{vowel: some(jungseongIndex[jamo])}
	}
	return table
}

func buildIndex(list []rune) map[rune]int {
	idx := make(map[rune]int, len(list))
	for i, r := range list {
		idx[r] = i
	}
	return idx
}

func buildSet(lists ...[]rune) map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, list := range lists {
		for _, r := range list {
			set[r] = struct{}{}
		}
	}
	return set
}

func lookupKey(r rune) (keyEntry, bool) {
	entry, ok := keyTable[r]
	return entry, ok
}

// IsKey reports whether r is a key of the dubeolsik keymap.
func IsKey(r rune) bool {
	_, ok := keyTable[r]
	return ok
}

// IsJamo reports whether r is a standalone compatibility jamo that the
// composer can emit when it fails to build a full syllable.
func IsJamo(r rune) bool {
	_, ok := jamoSet[r]
	return ok
}

// ContainsJamo reports whether s holds at least one standalone jamo.
func ContainsJamo(s string) bool {
	for _, r := range s {
		if IsJamo(r) {
			return true
		}
	}
	return false
}
