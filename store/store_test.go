package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/adambyle/goblet/game"
)

func sampleRows(gameID string, n int) []TurnRow {
	state := game.NewGame()
	rows := make([]TurnRow, 0, n)
	for i := 0; i < n; i++ {
		encoded, _ := EncodePositionJSON(state)
		mover := "white"
		if i%2 == 1 {
			mover = "black"
		}
		rows = append(rows, TurnRow{
			GameID:      gameID,
			Turn:        int32(i),
			Mover:       mover,
			MoveKind:    "place",
			Size:        int32(i % game.NumSizes),
			DestRow:     int32(i % game.BoardDim),
			DestCol:     int32(i / game.BoardDim % game.BoardDim),
			RootScore:   int32(i - 2),
			StateFormat: StateFormatJSONV1,
			State:       encoded,
		})
	}
	return rows
}

func TestWriteGameParquetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "games", "g1.parquet")

	rows := sampleRows("g1", 5)
	if err := WriteGameParquet(outPath, rows); err != nil {
		t.Fatalf("WriteGameParquet failed: %v", err)
	}

	got, err := parquet.ReadFile[TurnRow](outPath)
	if err != nil {
		t.Fatalf("read back parquet: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("rows=%d want %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i].GameID != rows[i].GameID || got[i].Turn != rows[i].Turn ||
			got[i].Mover != rows[i].Mover || got[i].RootScore != rows[i].RootScore {
			t.Errorf("row %d mismatch: got %+v want %+v", i, got[i], rows[i])
		}
		if string(got[i].State) != string(rows[i].State) {
			t.Errorf("row %d state blob mismatch", i)
		}
	}

	// No stray temp file.
	if _, err := os.Stat(outPath + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}
}

func TestWriteBatchParquetAtomic(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteBatchParquetAtomic(dir, sampleRows("g2", 3))
	if err != nil {
		t.Fatalf("WriteBatchParquetAtomic failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("batch written to %q, want directly under %q", path, dir)
	}
	if !strings.HasPrefix(filepath.Base(path), "batch_") || !strings.HasSuffix(path, ".parquet") {
		t.Errorf("unexpected batch name %q", filepath.Base(path))
	}

	got, err := parquet.ReadFile[TurnRow](path)
	if err != nil {
		t.Fatalf("read back parquet: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("rows=%d want 3", len(got))
	}

	// Staging dir exists but holds nothing once the rename lands.
	entries, err := os.ReadDir(filepath.Join(dir, "tmp"))
	if err != nil {
		t.Fatalf("read tmp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("tmp dir not empty after atomic write")
	}
}

func TestEncodePositionJSON(t *testing.T) {
	state := game.NewGame()
	state.Board.Cells[0][0].Pieces[0] = game.White
	state.Board.Cells[0][0].Pieces[3] = game.Black
	state.WhitePieces[0]--
	state.BlackPieces[3]--
	state.Turn = game.Black

	b, err := EncodePositionJSON(state)
	if err != nil {
		t.Fatalf("EncodePositionJSON failed: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"turn":"black"`) {
		t.Errorf("missing turn: %s", s)
	}
	if !strings.Contains(s, `"w..b"`) {
		t.Errorf("missing stacked cell encoding: %s", s)
	}
}
