package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"ekathra/pkg/platform/sentinel"
)

type memoryObject struct {
	info Info
	data []byte
}

// Memory keeps objects in process memory; used in tests and single-node dev.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memoryObject)}
}

func (m *Memory) Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Info{}, fmt.Errorf("read blob %s: %w", key, err)
	}
	info := Info{Key: key, Size: int64(len(data)), ContentType: contentType, LastModified: time.Now().UTC()}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{info: info, data: data}
	return info, nil
}

func (m *Memory) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return Info{}, nil, fmt.Errorf("blob %s: %w", key, sentinel.ErrNotFound)
	}
	return obj.info, io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]Info, 0, len(m.objects))
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, obj.info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}
