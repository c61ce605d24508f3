package notify_test

import (
	"bytes"
	"testing"
	"time"

	fcolor "github.com/fatih/color"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	fcolor.NoColor = true

	m.Run()
}

type fixedTimer struct{ total, stage time.Duration }

func (fixedTimer) Start()    {}
func (fixedTimer) NewStage() {}
func (f fixedTimer) GetTiming() (time.Duration, time.Duration) {
	return f.total, f.stage
}

func TestWriters_PrefixSymbols(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		write func(*bytes.Buffer)
		want  string
	}{
		{"activity", func(b *bytes.Buffer) { notify.Activityf(b, "creating %s", "cluster") }, "► creating cluster\n"},
		{"success", func(b *bytes.Buffer) { notify.Successf(b, "done") }, "✔ done\n"},
		{"warning", func(b *bytes.Buffer) { notify.Warningf(b, "slow %d", 3) }, "⚠ slow 3\n"},
		{"error", func(b *bytes.Buffer) { notify.Errorf(b, "boom") }, "✗ boom\n"},
		{"info", func(b *bytes.Buffer) { notify.Infof(b, "note") }, "ℹ note\n"},
		{"title", func(b *bytes.Buffer) { notify.Titlef(b, "🚀", "Create %s", "cluster") }, "🚀 Create cluster\n"},
		{"default title emoji", func(b *bytes.Buffer) { notify.Titlef(b, "", "Plain") }, "🧩 Plain\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tc.write(&buf)
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWrite_IndentsContinuationLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	notify.Errorf(&buf, "first\nsecond\n\nthird")

	assert.Equal(t, "✗ first\n  second\n\n  third\n", buf.String())
}

func TestStageDonef_PrintsTiming(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	notify.StageDonef(&buf, fixedTimer{total: 3 * time.Second, stage: time.Second}, "infra ready")

	assert.Equal(t, "✔ infra ready\n⏲ current: 1s\n  total:  3s\n", buf.String())
}

func TestStageWriter_SeparatesTitles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := notify.NewStageWriter(&buf)

	notify.Titlef(w, "🚀", "first")
	notify.Activityf(w, "work")
	notify.Successf(w, "ok")
	notify.Titlef(w, "📦", "second")

	assert.Equal(t, "🚀 first\n► work\n✔ ok\n\n📦 second\n", buf.String())
}

func TestStageWriter_EmptyWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := notify.NewStageWriter(&buf).Write(nil)

	assert.NoError(t, err)
	assert.Zero(t, n)
}
