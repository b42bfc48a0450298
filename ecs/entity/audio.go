package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/rakesh/assets"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/prefabs"
)

func buildAudioComponent(clips []prefabs.AudioClipSpec) (*component.Audio, error) {
	n := len(clips)
	names := make([]string, 0, n)
	players := make([]*audio.Player, 0, n)
	volume := make([]float64, 0, n)
	play := make([]bool, 0, n)
	stop := make([]bool, 0, n)

	for i, clip := range clips {
		sound := clip.Sound
		if sound == "" {
			sound = clip.Name
		}
		player, err := assets.LoadAudioPlayer(sound)
		if err != nil {
			return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		vol := clip.Volume
		if vol <= 0 {
			vol = 1
		}
		names = append(names, clip.Name)
		players = append(players, player)
		volume = append(volume, vol)
		play = append(play, false)
		stop = append(stop, false)
	}

	return &component.Audio{
		Names:   names,
		Players: players,
		Volume:  volume,
		Play:    play,
		Stop:    stop,
	}, nil
}

// NewSoundBank builds the persistent entity that owns every sound effect.
func NewSoundBank(w *ecs.World) (ecs.Entity, error) {
	if e, ok := ecs.First(w, component.SoundBankComponent.Kind()); ok {
		return e, nil
	}
	return BuildEntity(w, "sfx.yaml")
}
