package genome

import (
	"fmt"
	"strconv"
	"strings"
)

// geneTextLen is the canonical textual width of one gene: two hex digits
// each for source and destination, four for the weight as unsigned 16-bit.
const geneTextLen = 8

// Text returns the canonical 8-hex-character form SSDDWWWW. This form is
// used wherever genomes are persisted or logged, so runs can be compared
// byte for byte.
func (g Gene) Text() string {
	return fmt.Sprintf("%02X%02X%04X", g.Source, g.Destination, uint16(g.Weight))
}

// String implements fmt.Stringer using the canonical textual form.
func (g Gene) String() string {
	return g.Text()
}

// ParseGene is the inverse of Text.
func ParseGene(s string) (Gene, error) {
	if len(s) != geneTextLen {
		return Gene{}, fmt.Errorf("genome: gene text %q: want %d hex characters, got %d", s, geneTextLen, len(s))
	}
	raw, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Gene{}, fmt.Errorf("genome: gene text %q: %w", s, err)
	}
	return fromPacked(uint32(raw)), nil
}

// Text returns the genome as concatenated gene texts.
func (g Genome) Text() string {
	var b strings.Builder
	b.Grow(len(g) * geneTextLen)
	for _, gene := range g {
		b.WriteString(gene.Text())
	}
	return b.String()
}

// ParseGenome is the inverse of Genome.Text.
func ParseGenome(s string) (Genome, error) {
	if len(s)%geneTextLen != 0 {
		return nil, fmt.Errorf("genome: genome text length %d is not a multiple of %d", len(s), geneTextLen)
	}
	g := make(Genome, 0, len(s)/geneTextLen)
	for i := 0; i < len(s); i += geneTextLen {
		gene, err := ParseGene(s[i : i+geneTextLen])
		if err != nil {
			return nil, err
		}
		g = append(g, gene)
	}
	return g, nil
}
