package cli_test

import (
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/m-mizutani/devpost/pkg/cli"
	"github.com/m-mizutani/gt"
)

func TestParseRemoteOwner(t *testing.T) {
	testCases := map[string]struct {
		url   string
		owner string
		ok    bool
	}{
		"ssh":           {url: "git@github.com:alice/app.git", owner: "alice", ok: true},
		"ssh scheme":    {url: "ssh://git@github.com/alice/app.git", owner: "alice", ok: true},
		"https":         {url: "https://github.com/alice/app.git", owner: "alice", ok: true},
		"https no .git": {url: "https://github.com/alice/app", owner: "alice", ok: true},
		"other host":    {url: "https://gitlab.com/alice/app.git", ok: false},
		"no repo":       {url: "https://github.com/alice", ok: false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			owner, ok := cli.ParseRemoteOwnerForTest(tc.url)
			gt.V(t, ok).Equal(tc.ok)
			gt.V(t, owner).Equal(tc.owner)
		})
	}
}

func TestDetectOwner(t *testing.T) {
	t.Run("origin remote", func(t *testing.T) {
		dir := t.TempDir()
		repo := gt.R1(git.PlainInit(dir, false)).NoError(t)
		_, err := repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{"git@github.com:alice/app.git"},
		})
		gt.NoError(t, err)

		gt.V(t, gt.R1(cli.DetectOwner(dir)).NoError(t)).Equal("alice")
	})

	t.Run("no origin", func(t *testing.T) {
		dir := t.TempDir()
		gt.R1(git.PlainInit(dir, false)).NoError(t)

		_, err := cli.DetectOwner(dir)
		gt.Error(t, err)
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := cli.DetectOwner(t.TempDir())
		gt.Error(t, err)
	})
}
