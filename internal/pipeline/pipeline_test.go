package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/motion_beacon/internal/bus"
	"github.com/relabs-tech/motion_beacon/internal/ready"
	"github.com/relabs-tech/motion_beacon/internal/sample"
	"github.com/relabs-tech/motion_beacon/internal/wireless"
)

type fakeSampler struct {
	sample sample.Sample
	errs   []error // popped per call; nil entry means success
	calls  int
	onRead func()
}

func (f *fakeSampler) ReadSample() (sample.Sample, error) {
	f.calls++
	if f.onRead != nil {
		f.onRead()
	}
	var err error
	if len(f.errs) > 0 {
		err = f.errs[0]
		f.errs = f.errs[1:]
	}
	if err != nil {
		return sample.Sample{}, err
	}
	return f.sample, nil
}

type fakeNotifier struct {
	payloads [][]byte
	err      error
}

func (f *fakeNotifier) Notify(p *wireless.Peer, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, append([]byte(nil), payload...))
	return nil
}

type fixture struct {
	signal   *ready.Signal
	tr       *bus.MockTransport
	sampler  *fakeSampler
	notifier *fakeNotifier
	tracker  *wireless.Tracker
	p        *Pipeline
}

func newFixture() *fixture {
	f := &fixture{
		signal:   ready.New(),
		tr:       &bus.MockTransport{},
		sampler:  &fakeSampler{sample: sample.Sample{X: 100, Y: -50, Z: 32760}},
		notifier: &fakeNotifier{},
		tracker:  wireless.NewTracker(),
	}
	f.p = New(f.signal, bus.NewGate(f.tr), f.sampler, f.tracker, f.notifier)
	return f
}

func (f *fixture) connectPeer() {
	f.tracker.OnConnect(&wireless.Peer{})
}

func TestCycleDeliversToConnectedPeer(t *testing.T) {
	f := newFixture()
	f.connectPeer()

	f.signal.Post()
	f.p.cycle()

	require.Len(t, f.notifier.payloads, 1)
	assert.Equal(t, []byte{0x64, 0x00, 0xCE, 0xFF, 0x78, 0x7F}, f.notifier.payloads[0])
	assert.False(t, f.tr.Powered, "bus must be suspended before delivery")
}

func TestCycleDropsSampleWhenDisconnected(t *testing.T) {
	f := newFixture()

	f.signal.Post()
	f.p.cycle()

	assert.Equal(t, 1, f.sampler.calls, "the read still happens")
	assert.Empty(t, f.notifier.payloads, "no notification may be issued while disconnected")
}

func TestReadFailureReleasesBusAndNextCycleRecovers(t *testing.T) {
	f := newFixture()
	f.connectPeer()
	f.sampler.errs = []error{bus.ErrTransport, nil}

	f.signal.Post()
	f.p.cycle()

	assert.Empty(t, f.notifier.payloads, "a failed read must not be delivered")
	assert.False(t, f.tr.Powered, "bus must be released even when the read fails")

	f.signal.Post()
	f.p.cycle()

	assert.Len(t, f.notifier.payloads, 1, "the next signal produces a normal cycle")

	var ups, downs int
	for _, on := range f.tr.PowerLog {
		if on {
			ups++
		} else {
			downs++
		}
	}
	assert.Equal(t, ups, downs, "acquire/release must balance across failed and good cycles")
}

func TestPowerUpFailureAbandonsCycle(t *testing.T) {
	f := newFixture()
	f.connectPeer()
	f.tr.PowerOnErr = bus.ErrTransport

	f.signal.Post()
	f.p.cycle()

	assert.Zero(t, f.sampler.calls, "no read may be issued when the bus cannot power up")
	assert.Empty(t, f.notifier.payloads)
}

func TestCoalescedSignalsYieldOneCycle(t *testing.T) {
	f := newFixture()
	f.connectPeer()

	// Two interrupts fire before the worker drains the first.
	f.signal.Post()
	f.signal.Post()
	f.p.cycle()

	assert.Equal(t, 1, f.sampler.calls)

	// The worker goes back to Idle and stays there: the second
	// interrupt was coalesced, not queued.
	idle := make(chan struct{})
	go func() {
		f.p.cycle()
		close(idle)
	}()
	select {
	case <-idle:
		t.Fatal("a second cycle ran without a new signal")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 1, f.sampler.calls)
}

func TestDisconnectBetweenReadAndDeliverDropsSample(t *testing.T) {
	f := newFixture()
	f.connectPeer()
	// Peer drops while the bus is active.
	f.sampler.onRead = func() { f.tracker.OnDisconnect(nil) }

	f.signal.Post()
	f.p.cycle()

	assert.Equal(t, 1, f.sampler.calls, "the cycle completes the read")
	assert.Empty(t, f.notifier.payloads, "the sample is dropped without error propagation")
	assert.False(t, f.tr.Powered)
}

func TestNotifyFailureIsDroppedNotRetried(t *testing.T) {
	f := newFixture()
	f.connectPeer()
	f.notifier.err = wireless.ErrNotSubscribed

	f.signal.Post()
	f.p.cycle()

	// A second cycle must be a fresh attempt, not a retry of the lost
	// sample.
	f.notifier.err = nil
	f.signal.Post()
	f.p.cycle()

	require.Len(t, f.notifier.payloads, 1)
	assert.Equal(t, 2, f.sampler.calls)
}
