// Package store persists self-play output: one Parquet file of per-turn
// rows per batch of games, plus a small SQLite index of completed games.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/adambyle/goblet/game"
)

// TurnRow is a single (game, turn) record.
//
// State is a self-contained JSON snapshot of the position AFTER the move
// was applied (see RawPosition); StateFormat names its encoding so readers
// can evolve it. RootScore is the minimax value of the position the mover
// searched from, at the depth the game was played with.
type TurnRow struct {
	GameID string `parquet:"game_id,dict"`
	Turn   int32  `parquet:"turn"`
	Mover  string `parquet:"mover,dict"`

	MoveKind  string `parquet:"move_kind,dict"`
	Size      int32  `parquet:"size"`
	SourceRow int32  `parquet:"source_row"`
	SourceCol int32  `parquet:"source_col"`
	DestRow   int32  `parquet:"dest_row"`
	DestCol   int32  `parquet:"dest_col"`

	RootScore int32 `parquet:"root_score"`
	Win       bool  `parquet:"win"`

	StateFormat string `parquet:"state_format,dict"`
	State       []byte `parquet:"state"`
}

// RawPosition is the canonical snapshot stored in TurnRow.State.
//
// Board holds one string per cell in row-major order, one byte per size
// slot from smallest to largest: '.' empty, 'w' White, 'b' Black.
type RawPosition struct {
	Turn         string   `json:"turn"`
	WhiteReserve []int32  `json:"white_reserve"`
	BlackReserve []int32  `json:"black_reserve"`
	Board        []string `json:"board"`
}

// StateFormatJSONV1 is the StateFormat value for RawPosition JSON.
const StateFormatJSONV1 = "raw_position_json_v1"

// EncodePositionJSON serializes a position as RawPosition JSON.
func EncodePositionJSON(state *game.GameState) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("nil state")
	}

	raw := RawPosition{
		Turn:         state.Turn.String(),
		WhiteReserve: append([]int32(nil), state.WhitePieces[:]...),
		BlackReserve: append([]int32(nil), state.BlackPieces[:]...),
		Board:        make([]string, 0, game.BoardDim*game.BoardDim),
	}
	for row := 0; row < game.BoardDim; row++ {
		for col := 0; col < game.BoardDim; col++ {
			cell := make([]byte, game.NumSizes)
			for size := 0; size < game.NumSizes; size++ {
				switch state.Board.Cells[row][col].Pieces[size] {
				case game.White:
					cell[size] = 'w'
				case game.Black:
					cell[size] = 'b'
				default:
					cell[size] = '.'
				}
			}
			raw.Board = append(raw.Board, string(cell))
		}
	}
	return json.Marshal(raw)
}

// WriteGameParquet writes rows to outPath, creating parent directories as
// needed. The file is written to a temp path and renamed atomically so
// readers never observe a partial file.
func WriteGameParquet(outPath string, rows []TurnRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.SkipPageBounds("state"),
		parquet.KeyValueMetadata("schema", "goblet_turn_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteBatchParquetAtomic writes rows as a timestamped batch file under
// outDir, staging in outDir/tmp and renaming into place. It returns the
// final file path.
func WriteBatchParquetAtomic(outDir string, rows []TurnRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.SkipPageBounds("state"),
		parquet.KeyValueMetadata("schema", "goblet_turn_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return finalPath, nil
}
