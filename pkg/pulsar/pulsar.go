package pulsar

import "time"

// Pulsar is a pulsating object that generates pulses at the configured
// time interval. Every periodic job in the agent hangs off one:
//	p := pulsar.NewPulsar(30, time.Second) // pulse every 30 seconds
//	for range p.Pulsate() {
//		job.Run()
//	}
type Pulsar struct {
	Period  time.Duration
	pulse   *time.Ticker
	kill    chan bool
	pulsate chan time.Time
}

// Stop stops producing pulses, releasing any consumer ranging over the
// pulsate channel.
func (p *Pulsar) Stop() {
	p.kill <- true
}

// Pulsate starts pulsating. The pulses can be consumed on the returned
// channel.
func (p *Pulsar) Pulsate() chan time.Time {
	go func() {
		defer close(p.kill)
		defer close(p.pulsate)
		for {
			select {
			case <-p.kill:
				return
			case t := <-p.pulse.C:
				p.pulsate <- t
			}
		}
	}()

	return p.pulsate
}

// NewPulsar creates a new Pulsar pulsing every period*timeUnit.
func NewPulsar(period int, timeUnit time.Duration) *Pulsar {
	return &Pulsar{
		Period:  time.Duration(period) * timeUnit,
		pulse:   time.NewTicker(time.Duration(period) * timeUnit),
		kill:    make(chan bool),
		pulsate: make(chan time.Time),
	}
}
