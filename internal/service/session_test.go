package service_test

import (
	"testing"
	"time"

	"github.com/vortex/composer-api/internal/service"
)

func TestCreate_ReturnsUsableSession(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(time.Hour, 50)
	id := svc.Create()

	snapshot, err := svc.Content(id)
	if err != nil {
		t.Fatalf("Content failed for freshly created session: %v", err)
	}
	if snapshot.HTML != "" {
		t.Errorf("expected empty document, got %q", snapshot.HTML)
	}
}

func TestApply_UnknownSession(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(time.Hour, 50)
	_, err := svc.Apply("does-not-exist", []service.Command{{Type: "replace_text", Text: "hi"}})
	if err == nil {
		t.Error("expected error for unknown session, got nil")
	}
}

func TestApply_RunsCommandsInOrder(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(time.Hour, 50)
	id := svc.Create()

	result, err := svc.Apply(id, []service.Command{
		{Type: "replace_text", Text: "hello"},
		{Type: "select", Start: 0, End: 5},
		{Type: "bold"},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.HTML != "<p><strong>hello</strong></p>" {
		t.Errorf("unexpected HTML: %q", result.HTML)
	}
	if result.Actions["bold"] != "reversed" {
		t.Errorf("expected bold action state \"reversed\", got %q", result.Actions["bold"])
	}
}

func TestApply_StopsAtFirstFailingCommand(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(time.Hour, 50)
	id := svc.Create()

	_, err := svc.Apply(id, []service.Command{
		{Type: "replace_text", Text: "hello"},
		{Type: "not_a_real_command"},
	})
	if err == nil {
		t.Error("expected error for unknown command type, got nil")
	}

	// The first command in the batch still applied even though the batch
	// as a whole failed; Apply does not roll back.
	snapshot, contentErr := svc.Content(id)
	if contentErr != nil {
		t.Fatalf("Content failed: %v", contentErr)
	}
	if snapshot.HTML != "<p>hello</p>" {
		t.Errorf("expected prior command to have applied, got %q", snapshot.HTML)
	}
}

func TestApply_RejectsBatchOverLimit(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(time.Hour, 2)
	id := svc.Create()

	_, err := svc.Apply(id, []service.Command{
		{Type: "replace_text", Text: "a"},
		{Type: "replace_text", Text: "b"},
		{Type: "replace_text", Text: "c"},
	})
	if err == nil {
		t.Error("expected error for batch exceeding the per-request command limit, got nil")
	}
}

func TestDelete_MakesSessionUnknown(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(time.Hour, 50)
	id := svc.Create()
	svc.Delete(id)

	if _, err := svc.Content(id); err == nil {
		t.Error("expected error after deleting session, got nil")
	}
}

func TestDelete_UnknownSessionIsNoOp(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(time.Hour, 50)
	svc.Delete("never-existed")
}
