package embedder

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writeTestVocab writes a tiny WordPiece vocab; the line number is the ID.
func writeTestVocab(t *testing.T) string {
	t.Helper()
	lines := []string{
		"[PAD]",   // 0
		"[UNK]",   // 1
		"[CLS]",   // 2
		"[SEP]",   // 3
		"golden",  // 4
		"hour",    // 5
		"light",   // 6
		"##ing",   // 7
		"track",   // 8
		",",       // 9
		"shot",    // 10
	}
	path := filepath.Join(t.TempDir(), "vocab.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write vocab: %v", err)
	}
	return path
}

func TestTokenizerSpecials(t *testing.T) {
	tok, err := newTokenizer(writeTestVocab(t))
	if err != nil {
		t.Fatalf("newTokenizer: %v", err)
	}
	if tok.padID != 0 || tok.unkID != 1 || tok.clsID != 2 || tok.sepID != 3 {
		t.Errorf("special IDs = %d %d %d %d, want 0 1 2 3",
			tok.padID, tok.unkID, tok.clsID, tok.sepID)
	}
}

func TestTokenizerMissingSpecials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	if err := os.WriteFile(path, []byte("hello\nworld\n"), 0o644); err != nil {
		t.Fatalf("write vocab: %v", err)
	}
	if _, err := newTokenizer(path); err == nil {
		t.Fatal("vocab without special tokens accepted")
	}
}

func TestEncode(t *testing.T) {
	tok, err := newTokenizer(writeTestVocab(t))
	if err != nil {
		t.Fatalf("newTokenizer: %v", err)
	}

	tests := []struct {
		name string
		text string
		want []int64 // non-padding prefix of input_ids
	}{
		{"known words", "golden hour light", []int64{2, 4, 5, 6, 3}},
		{"wordpiece subword", "tracking shot", []int64{2, 8, 7, 10, 3}},
		{"punctuation split", "golden, hour", []int64{2, 4, 9, 5, 3}},
		{"unknown word", "zzzz", []int64{2, 1, 3}},
		{"case and accents", "GÖLDEN hour", []int64{2, 4, 5, 3}},
		{"empty", "", []int64{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, mask := tok.encode(tt.text)
			if got := ids[:len(tt.want)]; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("encode(%q) ids = %v, want %v", tt.text, got, tt.want)
			}
			for i := range mask {
				wantMask := int64(0)
				if i < len(tt.want) {
					wantMask = 1
				}
				if mask[i] != wantMask {
					t.Errorf("encode(%q) mask[%d] = %d, want %d", tt.text, i, mask[i], wantMask)
				}
			}
		})
	}
}

func TestTokenizeBatchPadsToLongest(t *testing.T) {
	tok, err := newTokenizer(writeTestVocab(t))
	if err != nil {
		t.Fatalf("newTokenizer: %v", err)
	}

	batch := tok.tokenizeBatch([]string{"golden hour light", "hour"})
	if batch.batchSize != 2 {
		t.Fatalf("batchSize = %d, want 2", batch.batchSize)
	}
	// Longest sample is [CLS] golden hour light [SEP] = 5 tokens.
	if batch.seqLen != 5 {
		t.Fatalf("seqLen = %d, want 5", batch.seqLen)
	}
	if got := batch.inputIDs[:5]; !reflect.DeepEqual(got, []int64{2, 4, 5, 6, 3}) {
		t.Errorf("first row = %v", got)
	}
	if got := batch.inputIDs[5:]; !reflect.DeepEqual(got, []int64{2, 5, 3, 0, 0}) {
		t.Errorf("second row = %v, want padded [CLS] hour [SEP] 0 0", got)
	}
	if got := batch.attentionMask[5:]; !reflect.DeepEqual(got, []int64{1, 1, 1, 0, 0}) {
		t.Errorf("second row mask = %v", got)
	}
}

func TestTokenizeBatchEmpty(t *testing.T) {
	tok, err := newTokenizer(writeTestVocab(t))
	if err != nil {
		t.Fatalf("newTokenizer: %v", err)
	}
	batch := tok.tokenizeBatch(nil)
	if batch.batchSize != 0 || len(batch.inputIDs) != 0 {
		t.Errorf("empty batch not empty: %+v", batch)
	}
}
