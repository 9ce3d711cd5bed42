package scene

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ModelIDKey is the node info key that links a node to a category row.
const ModelIDKey = "modelId"

// LoadCategories reads a category mapping CSV and applies it to s.
func LoadCategories(s *Scene, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("scene: open categories %s: %w", path, err)
	}
	defer f.Close()

	n, err := ApplyCategories(s, f)
	if err != nil {
		return 0, fmt.Errorf("scene: parse categories %s: %w", path, err)
	}
	return n, nil
}

// ApplyCategories reads a CSV with a header row containing a "model_id"
// column. Every column of a matching row is stored in the info of each node
// whose modelId info equals the row's model_id. It returns the number of
// nodes updated. Must be called before placement starts.
func ApplyCategories(s *Scene, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, err
	}
	idCol := -1
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if header[i] == "model_id" {
			idCol = i
		}
	}
	if idCol < 0 {
		return 0, errors.New("missing model_id column")
	}

	rows := make(map[string][]string)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if idCol < len(rec) {
			rows[strings.TrimSpace(rec[idCol])] = rec
		}
	}

	updated := 0
	for _, n := range s.nodes {
		id, ok := n.Info(ModelIDKey)
		if !ok {
			continue
		}
		rec, ok := rows[id]
		if !ok {
			continue
		}
		for i, h := range header {
			if i < len(rec) && h != "" {
				n.SetInfo(h, strings.TrimSpace(rec[i]))
			}
		}
		updated++
	}
	return updated, nil
}
