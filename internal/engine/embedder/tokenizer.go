package embedder

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxSeqLen caps tokenized sequence length. Inputs here are short phrase
// spans, not documents, so a tight cap keeps inference cheap.
const maxSeqLen = 64

// tokenized is a batch ready for inference. All slices are flat:
// [batchSize * seqLen].
type tokenized struct {
	inputIDs      []int64
	attentionMask []int64
	tokenTypeIDs  []int64
	batchSize     int64
	seqLen        int64
}

// tokenizer performs BERT-style WordPiece tokenization against a vocab.txt
// where the line number (0-indexed) is the token ID.
type tokenizer struct {
	tokenToID map[string]int64

	padID int64
	unkID int64
	clsID int64
	sepID int64
}

func newTokenizer(vocabPath string) (*tokenizer, error) {
	f, err := os.Open(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: %w", err)
	}
	defer f.Close()

	tokenToID := make(map[string]int64, 32000)
	scanner := bufio.NewScanner(f)
	var id int64
	for scanner.Scan() {
		tokenToID[scanner.Text()] = id
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tokenizer: read vocab: %w", err)
	}
	if id == 0 {
		return nil, fmt.Errorf("tokenizer: vocab file is empty: %s", vocabPath)
	}

	t := &tokenizer{tokenToID: tokenToID}
	for _, s := range []struct {
		name string
		dest *int64
	}{
		{"[PAD]", &t.padID},
		{"[UNK]", &t.unkID},
		{"[CLS]", &t.clsID},
		{"[SEP]", &t.sepID},
	} {
		tid, ok := tokenToID[s.name]
		if !ok {
			return nil, fmt.Errorf("tokenizer: vocab missing special token %s", s.name)
		}
		*s.dest = tid
	}
	return t, nil
}

// encode converts one text into padded ID and mask slices of length maxSeqLen:
// [CLS] tokens... [SEP] [PAD]...
func (t *tokenizer) encode(text string) (ids, mask []int64) {
	tokens := t.wordpiece(basicTokenize(text))
	if len(tokens) > maxSeqLen-2 {
		tokens = tokens[:maxSeqLen-2]
	}

	ids = make([]int64, maxSeqLen)
	mask = make([]int64, maxSeqLen)

	ids[0] = t.clsID
	mask[0] = 1
	for i, tok := range tokens {
		ids[i+1] = t.lookup(tok)
		mask[i+1] = 1
	}
	ids[len(tokens)+1] = t.sepID
	mask[len(tokens)+1] = 1
	// Trailing positions stay zero (padID=0, mask=0).

	return ids, mask
}

// tokenizeBatch encodes every text and packs the batch into flat slices,
// trimmed to the longest real sequence so padding does not inflate inference.
func (t *tokenizer) tokenizeBatch(texts []string) tokenized {
	n := len(texts)
	if n == 0 {
		return tokenized{}
	}

	allIDs := make([][]int64, n)
	allMasks := make([][]int64, n)
	maxLen := int64(0)
	for i, text := range texts {
		ids, mask := t.encode(text)
		allIDs[i] = ids
		allMasks[i] = mask
		var real int64
		for _, m := range mask {
			real += m
		}
		if real > maxLen {
			maxLen = real
		}
	}

	batchSize := int64(n)
	seqLen := maxLen
	total := batchSize * seqLen

	out := tokenized{
		inputIDs:      make([]int64, total),
		attentionMask: make([]int64, total),
		tokenTypeIDs:  make([]int64, total),
		batchSize:     batchSize,
		seqLen:        seqLen,
	}
	for i := 0; i < n; i++ {
		off := int64(i) * seqLen
		copy(out.inputIDs[off:off+seqLen], allIDs[i][:seqLen])
		copy(out.attentionMask[off:off+seqLen], allMasks[i][:seqLen])
	}
	return out
}

func (t *tokenizer) lookup(token string) int64 {
	if id, ok := t.tokenToID[token]; ok {
		return id
	}
	return t.unkID
}

func (t *tokenizer) contains(token string) bool {
	_, ok := t.tokenToID[token]
	return ok
}

// wordpiece decomposes each basic token into subwords by greedy longest-match.
// A token with no full decomposition becomes [UNK].
func (t *tokenizer) wordpiece(tokens []string) []string {
	var result []string
	for _, token := range tokens {
		if token == "" {
			continue
		}
		runes := []rune(token)
		if len(runes) > 100 {
			result = append(result, "[UNK]")
			continue
		}

		var subs []string
		start := 0
		ok := true
		for start < len(runes) {
			end := len(runes)
			found := false
			for end > start {
				sub := string(runes[start:end])
				if start > 0 {
					sub = "##" + sub
				}
				if t.contains(sub) {
					subs = append(subs, sub)
					found = true
					break
				}
				end--
			}
			if !found {
				ok = false
				break
			}
			start = end
		}
		if !ok {
			result = append(result, "[UNK]")
			continue
		}
		result = append(result, subs...)
	}
	return result
}

// basicTokenize cleans, lowercases, strips accents, and splits on whitespace
// and punctuation, matching BERT's BasicTokenizer for Latin-script text.
func basicTokenize(text string) []string {
	text = stripAccents(strings.ToLower(cleanText(text)))

	var tokens []string
	for _, word := range strings.Fields(text) {
		tokens = append(tokens, splitOnPunctuation(word)...)
	}
	return tokens
}

// cleanText drops control characters and maps all whitespace to spaces.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == 0 || r == 0xFFFD || isControl(r) {
			continue
		}
		if isWhitespace(r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripAccents removes combining marks after NFD normalization.
func stripAccents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(text) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitOnPunctuation splits a word at punctuation, keeping each punctuation
// character as its own token.
func splitOnPunctuation(word string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range word {
		if isPunctuation(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			tokens = append(tokens, string(r))
		} else {
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func isWhitespace(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r)
}

func isPunctuation(r rune) bool {
	// BERT treats the ASCII symbol ranges as punctuation even where Unicode
	// categories disagree.
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) ||
		(r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}
