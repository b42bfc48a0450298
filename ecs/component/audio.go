package component

import "github.com/hajimehoshi/ebiten/v2/audio"

type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

var AudioComponent = NewComponent[Audio]()

// Queue flags the named clip to play on the next audio update.
func (a *Audio) Queue(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n != name {
			continue
		}
		if i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

// SoundBank marks the entity carrying the shared sound effects.
type SoundBank struct{}

var SoundBankComponent = NewComponent[SoundBank]()
