package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"segdash/internal/frame"
)

// ErrNoDatasets is returned by Latest when nothing has been imported yet.
var ErrNoDatasets = errors.New("no datasets imported")

// Dataset is one imported table's metadata row.
type Dataset struct {
	ID         string
	Name       string
	ImportedAt time.Time
}

// DatasetRepo persists frames in the dataset tables.
type DatasetRepo struct {
	db *sql.DB
}

func NewDatasetRepo(db *sql.DB) *DatasetRepo { return &DatasetRepo{db: db} }

// Import stores a frame under a fresh id and returns its metadata.
func (r *DatasetRepo) Import(ctx context.Context, name string, f *frame.Frame) (Dataset, error) {
	ds := Dataset{ID: uuid.NewString(), Name: name, ImportedAt: Now()}
	err := WithTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO datasets(id, name, imported_at) VALUES(?, ?, ?)`,
			ds.ID, ds.Name, ds.ImportedAt); err != nil {
			return err
		}
		for pos, col := range f.Columns() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO dataset_columns(dataset_id, position, name, kind) VALUES(?, ?, ?, ?)`,
				ds.ID, pos, col.Name(), col.Kind().String()); err != nil {
				return err
			}
			if col.Kind() == frame.Text {
				for row, v := range col.Strings() {
					if _, err := tx.ExecContext(ctx,
						`INSERT INTO dataset_cells(dataset_id, row, position, text_value) VALUES(?, ?, ?, ?)`,
						ds.ID, row, pos, v); err != nil {
						return err
					}
				}
				continue
			}
			for row, v := range col.Numbers() {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO dataset_cells(dataset_id, row, position, num_value) VALUES(?, ?, ?, ?)`,
					ds.ID, row, pos, v); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("import dataset %q: %w", name, err)
	}
	return ds, nil
}

// Latest returns the most recently imported dataset's metadata.
func (r *DatasetRepo) Latest(ctx context.Context) (Dataset, error) {
	var ds Dataset
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, imported_at FROM datasets ORDER BY imported_at DESC, rowid DESC LIMIT 1`).
		Scan(&ds.ID, &ds.Name, &ds.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Dataset{}, ErrNoDatasets
	}
	if err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Load rehydrates a stored dataset into a frame.
func (r *DatasetRepo) Load(ctx context.Context, id string) (*frame.Frame, error) {
	type colMeta struct {
		name string
		kind string
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT position, name, kind FROM dataset_columns WHERE dataset_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	var metas []colMeta
	for rows.Next() {
		var pos int
		var m colMeta
		if err := rows.Scan(&pos, &m.name, &m.kind); err != nil {
			rows.Close()
			return nil, err
		}
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()
	if len(metas) == 0 {
		return nil, fmt.Errorf("load dataset %s: not found", id)
	}

	nums := make([][]float64, len(metas))
	strs := make([][]string, len(metas))
	cells, err := r.db.QueryContext(ctx,
		`SELECT row, position, num_value, text_value FROM dataset_cells WHERE dataset_id = ? ORDER BY row, position`, id)
	if err != nil {
		return nil, err
	}
	defer cells.Close()
	for cells.Next() {
		var row, pos int
		var num sql.NullFloat64
		var text sql.NullString
		if err := cells.Scan(&row, &pos, &num, &text); err != nil {
			return nil, err
		}
		if pos < 0 || pos >= len(metas) {
			return nil, fmt.Errorf("load dataset %s: cell position %d out of range", id, pos)
		}
		if metas[pos].kind == "text" {
			strs[pos] = append(strs[pos], text.String)
		} else {
			nums[pos] = append(nums[pos], num.Float64)
		}
	}
	if err := cells.Err(); err != nil {
		return nil, err
	}

	cols := make([]frame.Column, 0, len(metas))
	for i, m := range metas {
		switch m.kind {
		case "text":
			cols = append(cols, frame.TextColumn(m.name, strs[i]))
		case "time":
			cols = append(cols, frame.UnixTimeColumn(m.name, nums[i]))
		default:
			cols = append(cols, frame.NumberColumn(m.name, nums[i]))
		}
	}
	return frame.New(cols...)
}
