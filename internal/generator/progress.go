package generator

import (
	"time"
)

// Progress is a point-in-time snapshot of a running generation. Percent is
// simulated: it climbs steadily and parks at 85 until the gateway responds,
// because the gateway gives no intermediate signal to report.
type Progress struct {
	ProjectID string `json:"project_id"`
	Percent   int    `json:"percent"`
	Phase     string `json:"phase"`
}

type ProgressFunc func(Progress)

const (
	progressInterval = 500 * time.Millisecond
	progressStep     = 5
	progressCeiling  = 85
)

func phaseFor(percent int) string {
	switch {
	case percent <= 25:
		return "analyzing_prompt"
	case percent <= 50:
		return "designing_scenes"
	case percent <= 75:
		return "tuning_effects"
	default:
		return "finalizing"
	}
}

type progressTracker struct {
	projectID string
	notify    ProgressFunc
	stop      chan struct{}
	done      chan struct{}
}

func startProgress(projectID string, notify ProgressFunc) *progressTracker {
	t := &progressTracker{
		projectID: projectID,
		notify:    notify,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *progressTracker) run() {
	defer close(t.done)

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	percent := 0
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if percent < progressCeiling {
				percent += progressStep
			}
			if t.notify != nil {
				t.notify(Progress{ProjectID: t.projectID, Percent: percent, Phase: phaseFor(percent)})
			}
		}
	}
}

// finish stops the ticker and, on success, emits the terminal 100% update.
func (t *progressTracker) finish(success bool) {
	close(t.stop)
	<-t.done
	if success && t.notify != nil {
		t.notify(Progress{ProjectID: t.projectID, Percent: 100, Phase: "complete"})
	}
}
