// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"testing"
)

func TestConfigLinkLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	link := ConfigLink{
		Name:       "starship",
		SourcePath: "~/dotfiles/starship.toml",
		TargetPath: "~/.config/starship.toml",
	}
	if err := s.AddConfigLink(link); err != nil {
		t.Fatalf("AddConfigLink: %v", err)
	}

	got, err := s.GetConfigLink("starship")
	if err != nil {
		t.Fatalf("GetConfigLink: %v", err)
	}
	if got.SourcePath != link.SourcePath || got.TargetPath != link.TargetPath {
		t.Errorf("paths = %q -> %q, want %q -> %q",
			got.SourcePath, got.TargetPath, link.SourcePath, link.TargetPath)
	}
	if got.IsSymlinked {
		t.Error("new config link reports symlinked")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not recorded")
	}

	if err := s.DeleteConfigLink("starship"); err != nil {
		t.Fatalf("DeleteConfigLink: %v", err)
	}
	if _, err := s.GetConfigLink("starship"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConfigLink after delete = %v, want ErrNotFound", err)
	}
}

func TestAddConfigLinkDuplicateName(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	link := ConfigLink{Name: "nvim", SourcePath: "~/dotfiles/nvim", TargetPath: "~/.config/nvim"}
	if err := s.AddConfigLink(link); err != nil {
		t.Fatalf("AddConfigLink: %v", err)
	}
	if err := s.AddConfigLink(link); !errors.Is(err, ErrDuplicate) {
		t.Errorf("second AddConfigLink = %v, want ErrDuplicate", err)
	}
}

func TestConfigLinkToolAssociation(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if err := s.InsertTool(NewTool("bat").WithSource(SourceCargo)); err != nil {
		t.Fatalf("InsertTool: %v", err)
	}
	tool, err := s.GetTool("bat")
	if err != nil {
		t.Fatalf("GetTool: %v", err)
	}

	err = s.AddConfigLink(ConfigLink{
		Name:       "bat",
		SourcePath: "~/dotfiles/bat",
		TargetPath: "~/.config/bat",
		ToolID:     tool.ID,
	})
	if err != nil {
		t.Fatalf("AddConfigLink: %v", err)
	}

	got, err := s.GetConfigLink("bat")
	if err != nil {
		t.Fatalf("GetConfigLink: %v", err)
	}
	if got.ToolID != tool.ID {
		t.Errorf("ToolID = %d, want %d", got.ToolID, tool.ID)
	}
}

func TestSetSymlinked(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	link := ConfigLink{Name: "fish", SourcePath: "~/dotfiles/fish", TargetPath: "~/.config/fish"}
	if err := s.AddConfigLink(link); err != nil {
		t.Fatalf("AddConfigLink: %v", err)
	}

	if err := s.SetSymlinked("fish", true); err != nil {
		t.Fatalf("SetSymlinked: %v", err)
	}
	got, err := s.GetConfigLink("fish")
	if err != nil {
		t.Fatalf("GetConfigLink: %v", err)
	}
	if !got.IsSymlinked {
		t.Error("IsSymlinked = false after SetSymlinked(true)")
	}

	if err := s.SetSymlinked("fish", false); err != nil {
		t.Fatalf("SetSymlinked: %v", err)
	}
	got, err = s.GetConfigLink("fish")
	if err != nil {
		t.Fatalf("GetConfigLink: %v", err)
	}
	if got.IsSymlinked {
		t.Error("IsSymlinked = true after SetSymlinked(false)")
	}
}

func TestListConfigLinksOrdersByName(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	for _, name := range []string{"zellij", "alacritty", "helix"} {
		err := s.AddConfigLink(ConfigLink{
			Name:       name,
			SourcePath: "~/dotfiles/" + name,
			TargetPath: "~/.config/" + name,
		})
		if err != nil {
			t.Fatalf("AddConfigLink(%q): %v", name, err)
		}
	}

	links, err := s.ListConfigLinks()
	if err != nil {
		t.Fatalf("ListConfigLinks: %v", err)
	}
	want := []string{"alacritty", "helix", "zellij"}
	if len(links) != len(want) {
		t.Fatalf("got %d links, want %d", len(links), len(want))
	}
	for i, name := range want {
		if links[i].Name != name {
			t.Errorf("links[%d].Name = %q, want %q", i, links[i].Name, name)
		}
	}
}

func TestDeleteConfigLinkMissing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if err := s.DeleteConfigLink("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteConfigLink(missing) = %v, want ErrNotFound", err)
	}
}

func TestInterestLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if err := s.AddInterest("containers", "docker alternatives", 5); err != nil {
		t.Fatalf("AddInterest: %v", err)
	}
	if err := s.AddInterest("shell", "", 9); err != nil {
		t.Fatalf("AddInterest: %v", err)
	}

	if err := s.AddInterest("containers", "", 1); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate AddInterest = %v, want ErrDuplicate", err)
	}

	interests, err := s.ListInterests()
	if err != nil {
		t.Fatalf("ListInterests: %v", err)
	}
	if len(interests) != 2 {
		t.Fatalf("got %d interests, want 2", len(interests))
	}
	// Highest priority first.
	if interests[0].Name != "shell" || interests[1].Name != "containers" {
		t.Errorf("order = [%s %s], want [shell containers]", interests[0].Name, interests[1].Name)
	}
	if interests[1].Description != "docker alternatives" {
		t.Errorf("Description = %q, want %q", interests[1].Description, "docker alternatives")
	}
	if interests[1].Priority != 5 {
		t.Errorf("Priority = %d, want 5", interests[1].Priority)
	}

	if err := s.DeleteInterest("shell"); err != nil {
		t.Fatalf("DeleteInterest: %v", err)
	}
	if err := s.DeleteInterest("shell"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteInterest(missing) = %v, want ErrNotFound", err)
	}
}
