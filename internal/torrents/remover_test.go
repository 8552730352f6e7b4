package torrents_test

import (
	"context"
	"testing"

	"github.com/hekmon/transmissionrpc/v3"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/torrents"
)

type fakeRPC struct {
	torrents []transmissionrpc.Torrent
	removed  [][]int64
}

func (f *fakeRPC) TorrentGet(ctx context.Context, fields []string, ids []int64) ([]transmissionrpc.Torrent, error) {
	return f.torrents, nil
}

func (f *fakeRPC) TorrentRemove(ctx context.Context, payload transmissionrpc.TorrentRemovePayload) error {
	f.removed = append(f.removed, payload.IDs)
	return nil
}

func torrentFixture(id int64, dir, name string) transmissionrpc.Torrent {
	return transmissionrpc.Torrent{ID: &id, DownloadDir: &dir, Name: &name}
}

func newRemover(t *testing.T, rpc *fakeRPC) *torrents.Remover {
	t.Helper()
	remover, err := torrents.New(config.Transmission{Enabled: true, URL: "http://localhost:9091/transmission/rpc"}, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return remover.WithClient(rpc)
}

func TestNewDisabledReturnsNil(t *testing.T) {
	remover, err := torrents.New(config.Transmission{}, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if remover != nil {
		t.Fatal("expected nil remover when disabled")
	}
	// A nil remover is a usable no-op.
	if err := remover.RemoveBySource(context.Background(), "/dl/TV/show"); err != nil {
		t.Fatalf("nil remover should no-op, got %v", err)
	}
}

func TestRemoveBySourceMatchesCaseInsensitively(t *testing.T) {
	rpc := &fakeRPC{torrents: []transmissionrpc.Torrent{
		torrentFixture(3, "/dl/TV", "Other Show"),
		torrentFixture(7, "/dl/TV", "Downton Abbey S05"),
	}}
	remover := newRemover(t, rpc)

	if err := remover.RemoveBySource(context.Background(), "/dl/tv/downton abbey s05"); err != nil {
		t.Fatalf("RemoveBySource returned error: %v", err)
	}
	if len(rpc.removed) != 1 || len(rpc.removed[0]) != 1 || rpc.removed[0][0] != 7 {
		t.Fatalf("removed = %v", rpc.removed)
	}
}

func TestRemoveBySourceNoMatchIsNotAnError(t *testing.T) {
	rpc := &fakeRPC{torrents: []transmissionrpc.Torrent{
		torrentFixture(1, "/dl/Movies", "Some Movie"),
	}}
	remover := newRemover(t, rpc)

	if err := remover.RemoveBySource(context.Background(), "/dl/TV/unrelated"); err != nil {
		t.Fatalf("RemoveBySource returned error: %v", err)
	}
	if len(rpc.removed) != 0 {
		t.Fatalf("removed = %v", rpc.removed)
	}
}
