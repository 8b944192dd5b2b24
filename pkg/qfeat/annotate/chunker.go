package annotate

import "strings"

// Phrase labels produced by the chunker. Tokens outside any phrase are
// written bare between groups.
const (
	NounPhrase   = "NP"
	VerbPhrase   = "VP"
	AdverbPhrase = "ADVP"
	PrepPhrase   = "PP"
	outside      = ""
)

var phraseOf = map[string]string{
	"NN": NounPhrase, "NNS": NounPhrase, "NNP": NounPhrase, "NNPS": NounPhrase,
	"PRP": NounPhrase, "PRP$": NounPhrase, "DT": NounPhrase, "PDT": NounPhrase,
	"JJ": NounPhrase, "JJR": NounPhrase, "JJS": NounPhrase, "CD": NounPhrase,
	"WP": NounPhrase, "WP$": NounPhrase, "WDT": NounPhrase, "POS": NounPhrase,
	"EX": NounPhrase,

	"VB": VerbPhrase, "VBD": VerbPhrase, "VBG": VerbPhrase, "VBN": VerbPhrase,
	"VBP": VerbPhrase, "VBZ": VerbPhrase, "MD": VerbPhrase,

	"RB": AdverbPhrase, "RBR": AdverbPhrase, "RBS": AdverbPhrase, "WRB": AdverbPhrase,

	"IN": PrepPhrase, "TO": PrepPhrase,
}

// determiners open a new noun phrase once the current one has a head.
var determiners = map[string]bool{"DT": true, "PDT": true, "PRP$": true, "WP": true, "WP$": true, "WDT": true}

var nounHeads = map[string]bool{"NN": true, "NNS": true, "NNP": true, "NNPS": true, "PRP": true, "CD": true}

// Chunker groups tagged tokens into "[NP ...] [VP ...]" phrase annotations.
type Chunker struct{}

// NewChunker creates a chunker.
func NewChunker() *Chunker { return &Chunker{} }

// Chunk implements ingest.Chunker.
func (c *Chunker) Chunk(raw string) (string, error) {
	toks, err := tokens(raw)
	if err != nil {
		return "", err
	}
	return ChunkTagged(toks), nil
}

// ChunkTagged groups runs of tokens with the same phrase label. Brackets in
// token text are replaced so the output always parses.
func ChunkTagged(toks []TaggedToken) string {
	var (
		out     []string
		label   string
		words   []string
		hasHead bool
	)
	flush := func() {
		if len(words) == 0 {
			return
		}
		if label == outside {
			out = append(out, words...)
		} else {
			out = append(out, "["+label+" "+strings.Join(words, " ")+"]")
		}
		words, hasHead = nil, false
	}

	for _, t := range toks {
		next := phraseOf[t.Tag]
		if next != label || (next == NounPhrase && hasHead && determiners[t.Tag]) {
			flush()
			label = next
		}
		words = append(words, sanitize(t.Text))
		if nounHeads[t.Tag] {
			hasHead = true
		}
	}
	flush()
	return strings.Join(out, " ")
}

var bracketReplacer = strings.NewReplacer("[", "(", "]", ")")

func sanitize(s string) string {
	return bracketReplacer.Replace(s)
}
