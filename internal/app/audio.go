//go:build ebiten

package app

import (
	"fmt"

	"neon-slither/internal/sfx"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// cuePlayer plays pre-rendered cues through the ebiten audio context.
type cuePlayer struct {
	ctx     *audio.Context
	bank    *sfx.Bank
	players map[[2]int]*audio.Player
}

func newCuePlayer() (*cuePlayer, error) {
	bank, err := sfx.NewBank()
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	return &cuePlayer{
		ctx:     audio.NewContext(int(sfx.SampleRate)),
		bank:    bank,
		players: map[[2]int]*audio.Player{},
	}, nil
}

func (c *cuePlayer) Play(cue sfx.Cue, combo int) {
	if c == nil {
		return
	}
	if cue != sfx.CueCombo {
		combo = 0
	}
	combo = min(combo, sfx.MaxComboPitch)
	key := [2]int{int(cue), combo}
	p, ok := c.players[key]
	if !ok {
		p = c.ctx.NewPlayerFromBytes(c.bank.Bytes(cue, combo))
		c.players[key] = p
	}
	_ = p.Rewind()
	p.Play()
}
