// In-memory brute-force index. At corpus scale (~22k records, 384 dims) a
// full scan is a few milliseconds, which keeps the retrieval collaborator
// dependency-free while preserving the ANN service contract.
package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mashriq/daleel/pkg/utils"
)

// MemoryIndex is an in-memory vector index using brute-force inner product search.
type MemoryIndex struct {
	dimensions int
	points     []Point
	mu         sync.RWMutex
}

// NewMemoryIndex creates an in-memory vector index with the given dimension.
func NewMemoryIndex(dimensions int) (*MemoryIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryIndex{
		dimensions: dimensions,
		points:     make([]Point, 0),
	}, nil
}

// Add appends points to the index. Vectors are copied.
func (m *MemoryIndex) Add(ctx context.Context, points []Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range points {
		if len(p.Vector) != m.dimensions {
			return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(p.Vector), m.dimensions)
		}
		vec := make([]float32, m.dimensions)
		copy(vec, p.Vector)
		p.Vector = vec
		m.points = append(m.points, p)
	}
	return nil
}

// Search returns the top-k points by inner product (assumes normalized
// vectors = cosine similarity), ordered by descending score. The filter is
// applied before the limit cut.
func (m *MemoryIndex) Search(ctx context.Context, query []float32, k int, filter *Filter) ([]Hit, error) {
	if len(query) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), m.dimensions)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if k <= 0 || len(m.points) == 0 {
		return nil, nil
	}
	hits := make([]Hit, 0, len(m.points))
	for i := range m.points {
		p := &m.points[i]
		if filter != nil && filter.Category != "" && p.Payload.Category != filter.Category {
			continue
		}
		hits = append(hits, Hit{ID: p.ID, Score: utils.InnerProduct(query, p.Vector), Payload: p.Payload})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Remove removes points by ID, rebuilding the backing slice.
func (m *MemoryIndex) Remove(ctx context.Context, ids []string) error {
	removeSet := make(map[string]bool)
	for _, id := range ids {
		removeSet[id] = true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := make([]Point, 0, len(m.points))
	for _, p := range m.points {
		if !removeSet[p.ID] {
			kept = append(kept, p)
		}
	}
	m.points = kept
	return nil
}

// Save persists the index to path. Directory is created if needed.
// Format: dimension (4), n (4), then per point: id, category, shaykh,
// question, answer preview as length-prefixed strings, then the vector
// (dimension*4 bytes, little endian).
func (m *MemoryIndex) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer f.Close()
	if err := binary.Write(f, binary.LittleEndian, uint32(m.dimensions)); err != nil {
		return fmt.Errorf("write dimensions: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(m.points))); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	for i := range m.points {
		p := &m.points[i]
		for _, s := range []string{p.ID, p.Payload.Category, p.Payload.Shaykh, p.Payload.Question, p.Payload.AnswerPreview} {
			if err := writeString(f, s); err != nil {
				return err
			}
		}
		if _, err := f.Write(float32SliceToBytes(p.Vector)); err != nil {
			return fmt.Errorf("write vector: %w", err)
		}
	}
	return nil
}

// Load reads the index from path and replaces the in-memory contents.
// Dimensions must match. If the file does not exist, no error is returned
// and the index is unchanged.
func (m *MemoryIndex) Load(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()
	var dim, n uint32
	if err := binary.Read(f, binary.LittleEndian, &dim); err != nil {
		return fmt.Errorf("read dimensions: %w", err)
	}
	if int(dim) != m.dimensions {
		return fmt.Errorf("dimension mismatch: file has %d, index expects %d", dim, m.dimensions)
	}
	if err := binary.Read(f, binary.LittleEndian, &n); err != nil {
		return fmt.Errorf("read count: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = make([]Point, 0, n)
	buf := make([]byte, m.dimensions*4)
	for i := uint32(0); i < n; i++ {
		var p Point
		fields := []*string{&p.ID, &p.Payload.Category, &p.Payload.Shaykh, &p.Payload.Question, &p.Payload.AnswerPreview}
		for _, field := range fields {
			s, err := readString(f)
			if err != nil {
				return err
			}
			*field = s
		}
		if _, err := io.ReadFull(f, buf); err != nil {
			return fmt.Errorf("read vector: %w", err)
		}
		p.Vector = bytesToFloat32Slice(buf)
		m.points = append(m.points, p)
	}
	return nil
}

// Size returns the number of points in the index.
func (m *MemoryIndex) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.points)
}

// Close is a no-op for MemoryIndex.
func (m *MemoryIndex) Close() error {
	return nil
}

func writeString(w io.Writer, s string) error {
	b := []byte(s)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(b))); err != nil {
		return fmt.Errorf("write string len: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write string: %w", err)
	}
	return nil
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", fmt.Errorf("read string len: %w", err)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("read string: %w", err)
	}
	return string(b), nil
}

func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}
