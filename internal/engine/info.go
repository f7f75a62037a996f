package engine

// PlayerInfo holds the built-in score and life counters of one player. The
// counters survive scene changes; the event subscriptions are scene scoped.
type PlayerInfo struct {
	game   *Game
	Player int
	score  int
	life   int
}

func (p *PlayerInfo) Score() int { return p.score }

// SetScore stores v and fires every OnScore target crossed on the way up.
func (p *PlayerInfo) SetScore(v int) {
	old := p.score
	p.score = v
	if v <= old {
		return
	}
	sc := p.game.CurrentScene()
	for _, target := range sc.argsFor(p, kindScore) {
		if old < target && target <= v {
			sc.fire(eventKey{src: p, kind: kindScore, arg: target})
		}
	}
}

func (p *PlayerInfo) ChangeScoreBy(d int) { p.SetScore(p.score + d) }

func (p *PlayerInfo) Life() int { return p.life }

// SetLife stores v and fires OnLifeZero when the counter drops from a positive
// value to zero or below.
func (p *PlayerInfo) SetLife(v int) {
	old := p.life
	p.life = v
	if old > 0 && v <= 0 {
		p.game.CurrentScene().fire(eventKey{src: p, kind: kindLifeZero})
	}
}

func (p *PlayerInfo) ChangeLifeBy(d int) { p.SetLife(p.life + d) }

func (p *PlayerInfo) OnScore(target int, fn func()) {
	p.game.CurrentScene().on(eventKey{src: p, kind: kindScore, arg: target}, fn)
}

func (p *PlayerInfo) OnLifeZero(fn func()) {
	p.game.CurrentScene().on(eventKey{src: p, kind: kindLifeZero}, fn)
}

// ScoreHandlerCount reports the current scene's subscriptions for target.
func (p *PlayerInfo) ScoreHandlerCount(target int) int {
	return p.game.CurrentScene().count(eventKey{src: p, kind: kindScore, arg: target})
}

func (p *PlayerInfo) LifeZeroHandlerCount() int {
	return p.game.CurrentScene().count(eventKey{src: p, kind: kindLifeZero})
}
