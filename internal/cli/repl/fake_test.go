package repl

import (
	"context"
	"time"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

type fakeSession struct {
	tree    []domain.Node
	refresh []domain.Node
	files   map[string]string
	err     error // returned by every remote call when set
	lists   int
}

func newFakeSession() *fakeSession {
	mod := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &fakeSession{
		tree: []domain.Node{
			domain.NewFolder("/r",
				domain.NewFile("/r/a.txt", &domain.Metadata{Size: 2, Modified: mod}),
				domain.NewFolder("/r/sub",
					domain.NewFile("/r/sub/b.txt", &domain.Metadata{Size: 3, Modified: mod}),
				),
			),
		},
		files: map[string]string{
			"/r/a.txt":     "hi",
			"/r/sub/b.txt": "bee",
		},
	}
}

func (f *fakeSession) Server() string { return "host:7070" }

func (f *fakeSession) Tree() []domain.Node { return f.tree }

func (f *fakeSession) List(context.Context) ([]domain.Node, error) {
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	if f.refresh != nil {
		return f.refresh, nil
	}
	return f.tree, nil
}

func (f *fakeSession) Fetch(_ context.Context, path string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.files[path]
	if !ok {
		return nil, domain.ErrFileNotFound.WithDetails(path)
	}
	return []byte(data), nil
}
