package hangul

import "strings"

// slot is one position of the syllable being composed. The zero value is
// an empty slot.
type slot struct {
	index int
	set   bool
}

func some(index int) slot { return slot{index: index, set: true} }

// Composer turns dubeolsik keystrokes into Hangul. It keeps at most one
// syllable in progress and appends everything else to its output buffer.
// A Composer is not safe for concurrent use.
type Composer struct {
	lead  slot // choseong
	vowel slot // jungseong
	tail  slot // jongseong
	text  []rune
}

func NewComposer() *Composer {
	return &Composer{text: make([]rune, 0, 32)}
}

// Convert runs a fresh Composer over token and returns everything it
// produced, flushing the final syllable.
func Convert(token string) string {
	if token == "" {
		return ""
	}
	c := NewComposer()
	for _, r := range token {
		c.Type(r)
	}
	return c.Flush()
}

// Type feeds one character. Characters outside the keymap close the
// pending syllable and are copied verbatim.
func (c *Composer) Type(r rune) {
	entry, ok := lookupKey(r)
	if !ok {
		c.commit()
		c.text = append(c.text, r)
		return
	}
	if entry.vowel.set {
		c.handleVowel(entry.vowel.index)
		return
	}
	c.handleConsonant(entry)
}

// Text returns the committed output followed by the pending syllable.
func (c *Composer) Text() string {
	var b strings.Builder
	b.Grow(len(c.text)*3 + 3)
	b.WriteString(string(c.text))
	if r, ok := c.pending(); ok {
		b.WriteRune(r)
	}
	return b.String()
}

// Flush commits the pending syllable and returns the whole buffer, leaving
// the Composer empty.
func (c *Composer) Flush() string {
	c.commit()
	out := string(c.text)
	c.text = c.text[:0]
	return out
}

// Reset drops both the pending syllable and the buffer.
func (c *Composer) Reset() {
	c.lead, c.vowel, c.tail = slot{}, slot{}, slot{}
	c.text = c.text[:0]
}

func (c *Composer) handleConsonant(entry keyEntry) {
	switch {
	case c.vowel.set && !c.lead.set:
		// A bare vowel never takes a final consonant.
		c.commit()
		c.lead = entry.lead

	case c.vowel.set && !c.tail.set:
		if entry.tail.set {
			c.tail = entry.tail
			return
		}
		c.commit()
		c.lead = entry.lead

	case c.vowel.set:
		if merged, ok := tailClusters[[2]int{c.tail.index, entry.lead.index}]; ok {
			c.tail = some(merged)
			return
		}
		c.commit()
		c.lead = entry.lead

	case c.lead.set:
		if merged, ok := leadClusters[[2]int{c.lead.index, entry.lead.index}]; ok {
			c.lead = slot{}
			c.tail = some(merged)
			return
		}
		c.commit()
		c.lead = entry.lead

	default:
		c.commit()
		c.lead = entry.lead
	}
}

func (c *Composer) handleVowel(vowel int) {
	if c.tail.set {
		retained, donated := splitTail(c.tail.index)
		c.tail = retained
		c.commit()
		c.lead = some(donated)
	}

	if !c.vowel.set {
		c.vowel = some(vowel)
		return
	}

	if merged, ok := vowelClusters[[2]int{c.vowel.index, vowel}]; ok {
		c.vowel = some(merged)
		return
	}

	c.commit()
	c.vowel = some(vowel)
}

// splitTail breaks a final consonant apart when a vowel follows it. A
// cluster keeps its first member and donates the second; a simple final
// is donated whole.
func splitTail(tail int) (slot, int) {
	if pair, ok := clusterSplit[tail]; ok {
		return some(pair[0]), pair[1]
	}
	return slot{}, tailToLead[tail]
}

func (c *Composer) pending() (rune, bool) {
	switch {
	case c.lead.set && c.vowel.set:
		return compose(c.lead.index, c.vowel.index, c.tail), true
	case c.lead.set:
		return choseong[c.lead.index], true
	case c.vowel.set:
		return jungseong[c.vowel.index], true
	case c.tail.set:
		return jongseong[c.tail.index], true
	}
	return 0, false
}

func (c *Composer) commit() {
	if r, ok := c.pending(); ok {
		c.text = append(c.text, r)
	}
	c.lead, c.vowel, c.tail = slot{}, slot{}, slot{}
}

// compose returns the precomposed syllable for a choseong and jungseong
// index and an optional jongseong.
func compose(lead, vowel int, tail slot) rune {
	t := 0
	if tail.set {
		t = tail.index + 1
	}
	return rune(syllableBase + (lead*medialCount+vowel)*finalCount + t)
}
