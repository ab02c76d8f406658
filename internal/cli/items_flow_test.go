package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestItemsFlow_CreateListToggleDelete(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOLIST_CONFIG_DIR", t.TempDir())

	created := mustRun(t, "--dir", dir, "items", "create",
		"--title", "Water plants",
		"--priority", "high",
		"--tag", "home", "--tag", "garden")
	item := created["data"].(map[string]any)
	id, _ := item["id"].(string)
	if id == "" {
		t.Fatalf("expected created item id, got %#v", created["data"])
	}
	if item["priority"] != "high" || item["completed"] != false {
		t.Fatalf("created item: %#v", item)
	}
	notif, _ := created["notification"].(map[string]any)
	if notif == nil || notif["title"] != "Item created" {
		t.Fatalf("expected create notification, got %#v", created["notification"])
	}

	mustRun(t, "--dir", dir, "items", "create", "--title", "File expenses")

	list := mustRun(t, "--dir", dir, "items", "list")
	if xs, ok := list["data"].([]any); !ok || len(xs) != 2 {
		t.Fatalf("expected 2 items, got %#v", list["data"])
	}

	toggled := mustRun(t, "--dir", dir, "items", "toggle", id)
	if toggled["data"].(map[string]any)["completed"] != true {
		t.Fatalf("toggle: %#v", toggled["data"])
	}
	if n := toggled["notification"].(map[string]any); n["title"] != "Item completed" {
		t.Fatalf("toggle notification: %#v", n)
	}

	// The completed item drops out under the active filter.
	active := mustRun(t, "--dir", dir, "items", "list", "--status", "active")
	if xs := active["data"].([]any); len(xs) != 1 {
		t.Fatalf("active list: %#v", active["data"])
	}

	shown := mustRun(t, "--dir", dir, "items", "show", id)
	if shown["data"].(map[string]any)["title"] != "Water plants" {
		t.Fatalf("show: %#v", shown["data"])
	}

	deleted := mustRun(t, "--dir", dir, "items", "delete", id)
	if deleted["data"].(map[string]any)["deleted"] != true {
		t.Fatalf("delete: %#v", deleted["data"])
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "items", "show", id}); err == nil {
		t.Fatalf("expected show of a deleted item to fail")
	}
}

func TestItemsUpdate_PatchFlags(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOLIST_CONFIG_DIR", t.TempDir())

	created := mustRun(t, "--dir", dir, "items", "create", "--title", "Draft", "--due", "2026-09-01")
	id := created["data"].(map[string]any)["id"].(string)

	upd := mustRun(t, "--dir", dir, "items", "update", id, "--title", "Final", "--priority", "urgent")
	got := upd["data"].(map[string]any)
	if got["title"] != "Final" || got["priority"] != "urgent" {
		t.Fatalf("update: %#v", got)
	}
	// Due untouched by an unrelated patch.
	if got["due"] == nil {
		t.Fatalf("due clobbered: %#v", got)
	}

	cleared := mustRun(t, "--dir", dir, "items", "update", id, "--clear-due")
	if cleared["data"].(map[string]any)["due"] != nil {
		t.Fatalf("clear-due: %#v", cleared["data"])
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "items", "update", "item-nope", "--title", "X"}); err == nil {
		t.Fatalf("expected update of a missing item to fail")
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "items", "update", id, "--priority", "extreme"}); err == nil {
		t.Fatalf("expected invalid priority to fail")
	}
}

func TestItemsDuplicate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOLIST_CONFIG_DIR", t.TempDir())

	created := mustRun(t, "--dir", dir, "items", "create", "--title", "Report")
	id := created["data"].(map[string]any)["id"].(string)
	mustRun(t, "--dir", dir, "items", "toggle", id)

	dup := mustRun(t, "--dir", dir, "items", "duplicate", id)
	cp := dup["data"].(map[string]any)
	if cp["title"] != "Report (copy)" {
		t.Fatalf("duplicate title: %#v", cp)
	}
	if cp["id"] == id {
		t.Fatalf("duplicate reused the source id")
	}
	if cp["completed"] != false {
		t.Fatalf("duplicate must start pending: %#v", cp)
	}
}

func TestItemsBulk_EnvelopeCounts(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOLIST_CONFIG_DIR", t.TempDir())

	a := mustRun(t, "--dir", dir, "items", "create", "--title", "A")
	b := mustRun(t, "--dir", dir, "items", "create", "--title", "B")
	aID := a["data"].(map[string]any)["id"].(string)
	bID := b["data"].(map[string]any)["id"].(string)

	upd := mustRun(t, "--dir", dir, "items", "bulk-update", aID, bID, "item-ghost", "--priority", "low")
	got := upd["data"].(map[string]any)
	if got["requested"] != float64(3) || got["updated"] != float64(2) {
		t.Fatalf("bulk-update counts: %#v", got)
	}

	del := mustRun(t, "--dir", dir, "items", "bulk-delete", aID, bID, "item-ghost")
	got = del["data"].(map[string]any)
	if got["requested"] != float64(3) || got["deleted"] != float64(2) {
		t.Fatalf("bulk-delete counts: %#v", got)
	}
	// The aggregate message reports the requested count.
	if n := del["notification"].(map[string]any); n["body"] != "3 items deleted" {
		t.Fatalf("bulk-delete notification: %#v", n)
	}

	list := mustRun(t, "--dir", dir, "items", "list")
	if xs := list["data"].([]any); len(xs) != 0 {
		t.Fatalf("items remain after bulk delete: %#v", xs)
	}
}

func TestItemsTags_AddRemove(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOLIST_CONFIG_DIR", t.TempDir())

	created := mustRun(t, "--dir", dir, "items", "create", "--title", "T", "--tag", "one")
	id := created["data"].(map[string]any)["id"].(string)

	added := mustRun(t, "--dir", dir, "items", "tags", "add", id, "two", "one")
	tags := added["data"].(map[string]any)["tags"].([]any)
	if len(tags) != 2 || tags[0] != "one" || tags[1] != "two" {
		t.Fatalf("tags after add: %#v", tags)
	}

	removed := mustRun(t, "--dir", dir, "items", "tags", "rm", id, "one")
	tags = removed["data"].(map[string]any)["tags"].([]any)
	if len(tags) != 1 || tags[0] != "two" {
		t.Fatalf("tags after rm: %#v", tags)
	}
}

func TestStats_Envelope(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOLIST_CONFIG_DIR", t.TempDir())

	a := mustRun(t, "--dir", dir, "items", "create", "--title", "A", "--priority", "urgent")
	mustRun(t, "--dir", dir, "items", "create", "--title", "B")
	mustRun(t, "--dir", dir, "items", "toggle", a["data"].(map[string]any)["id"].(string))

	stats := mustRun(t, "--dir", dir, "stats")
	got := stats["data"].(map[string]any)
	if got["total"] != float64(2) || got["completed"] != float64(1) || got["pending"] != float64(1) {
		t.Fatalf("stats: %#v", got)
	}
	byPriority := got["byPriority"].(map[string]any)
	if byPriority["urgent"] != float64(1) || byPriority["medium"] != float64(1) || byPriority["low"] != float64(0) {
		t.Fatalf("byPriority: %#v", byPriority)
	}
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: dolist %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, string(stdout))
	}
	return env
}

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}
