package lifecycle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/internal/log"
	"github.com/imtaco/voicelink/voice"
	"github.com/imtaco/voicelink/voice/mocks"
)

// sessionState backs the manager mock's getters.
type sessionState struct {
	mu     sync.Mutex
	status voice.ConnectionStatus
	room   string
	mic    bool
	gen    uint64
}

func (st *sessionState) Status() voice.ConnectionStatus {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.status
}

func (st *sessionState) RoomID() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.room
}

func (st *sessionState) MicrophoneEnabled() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.mic
}

func (st *sessionState) Generation() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.gen
}

func (st *sessionState) connect(_ context.Context, roomID string, mic bool) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.gen++
	st.status, st.room, st.mic = voice.StatusConnected, roomID, mic
	return true
}

func (st *sessionState) disconnect(_ context.Context) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.gen++
	st.status, st.room, st.mic = voice.StatusDisconnected, "", false
}

func (st *sessionState) setMic(_ context.Context, enabled bool) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.mic = enabled
	return true
}

type uiRecorder struct {
	mu        sync.Mutex
	statuses  []voice.ConnectionStatus
	speaking  []string
	errs      []error
	silent    int
	autoMuted int
}

func (r *uiRecorder) callbacks() voice.Callbacks {
	return voice.Callbacks{
		OnConnectionStatusChange: func(s voice.ConnectionStatus) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.statuses = append(r.statuses, s)
		},
		OnParticipantSpeaking: func(id string, speaking bool) {
			r.mu.Lock()
			defer r.mu.Unlock()
			if speaking {
				r.speaking = append(r.speaking, "+"+id)
			} else {
				r.speaking = append(r.speaking, "-"+id)
			}
		},
		OnError: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errs = append(r.errs, err)
		},
		OnAllSilent: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.silent++
		},
		OnAutoMuted: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.autoMuted++
		},
	}
}

func (r *uiRecorder) snapshot() (errs []error, speaking []string, silent, autoMuted int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...), append([]string(nil), r.speaking...), r.silent, r.autoMuted
}

type ControllerTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	mgr   *mocks.MockSessionManager
	perms *mocks.MockPermissions
	state *sessionState
	clock *clockwork.FakeClock
	ui    *uiRecorder
	cb    voice.Callbacks
	c     *Controller
	ctx   context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (s *ControllerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mgr = mocks.NewMockSessionManager(s.ctrl)
	s.perms = mocks.NewMockPermissions(s.ctrl)
	s.state = &sessionState{}
	s.clock = clockwork.NewFakeClock()
	s.ui = &uiRecorder{}

	s.mgr.EXPECT().SetCallbacks(gomock.Any()).Do(func(cb voice.Callbacks) { s.cb = cb })
	s.mgr.EXPECT().Status().DoAndReturn(s.state.Status).AnyTimes()
	s.mgr.EXPECT().RoomID().DoAndReturn(s.state.RoomID).AnyTimes()
	s.mgr.EXPECT().MicrophoneEnabled().DoAndReturn(s.state.MicrophoneEnabled).AnyTimes()
	s.mgr.EXPECT().Generation().DoAndReturn(s.state.Generation).AnyTimes()

	c, err := NewController(s.mgr, s.perms, &Config{BackgroundGrace: 10 * time.Second},
		log.NewNop(), WithClock(s.clock))
	s.Require().NoError(err)
	s.c = c
	s.c.SetCallbacks(s.ui.callbacks())
}

func (s *ControllerTestSuite) TearDownTest() {
	s.c.Close()
}

func (s *ControllerTestSuite) expectConnect(roomID string, mic bool) *gomock.Call {
	return s.mgr.EXPECT().Connect(gomock.Any(), roomID, mic).DoAndReturn(s.state.connect)
}

func (s *ControllerTestSuite) expectDisconnect() *gomock.Call {
	return s.mgr.EXPECT().Disconnect(gomock.Any()).Do(s.state.disconnect)
}

// joinListening leaves the controller connected to roomID with others present.
func (s *ControllerTestSuite) joinListening(roomID string, count int) {
	s.expectConnect(roomID, false)
	s.c.Update(s.ctx, roomID, count)
	s.Require().Equal(voice.StatusConnected, s.state.Status())
}

func (s *ControllerTestSuite) settleGrace() {
	s.c.sched.Pending(backgroundKey)
}

func (s *ControllerTestSuite) TestAutoConnectWhenOthersPresent() {
	s.joinListening("r1", 2)

	snap := s.c.Snapshot()
	s.Equal("r1", snap.DesiredRoomID)
	s.Equal(2, snap.ParticipantCount)
	s.False(snap.Manual)
	s.False(snap.MicrophoneEnabled)
}

func (s *ControllerTestSuite) TestNoAutoConnectWhenAlone() {
	s.c.Update(s.ctx, "r1", 0)
	s.Equal(voice.StatusDisconnected, s.c.ConnectionStatus())
}

func (s *ControllerTestSuite) TestAutoDisconnectWhenAlone() {
	s.joinListening("r1", 1)

	s.expectDisconnect().Times(1)
	s.c.Update(s.ctx, "r1", 0)
	s.Equal(voice.StatusDisconnected, s.state.Status())
}

func (s *ControllerTestSuite) TestManualConnectSurvivesBeingAlone() {
	s.c.Update(s.ctx, "r1", 0)
	s.expectConnect("r1", false)
	s.True(s.c.Connect(s.ctx, ""))
	s.True(s.c.Snapshot().Manual)

	s.c.Update(s.ctx, "r1", 0)
	s.Equal(voice.StatusConnected, s.state.Status())
}

func (s *ControllerTestSuite) TestRoomChangeSwitchesAndClearsManual() {
	s.joinListening("r1", 1)
	s.expectConnect("r1", false)
	s.True(s.c.Connect(s.ctx, "r1"))

	gomock.InOrder(
		s.expectDisconnect(),
		s.expectConnect("r2", false),
	)
	s.c.Update(s.ctx, "r2", 3)

	s.Equal("r2", s.state.RoomID())
	s.False(s.c.Snapshot().Manual)
}

func (s *ControllerTestSuite) TestRoomChangeWhileAloneOnlyDisconnects() {
	s.joinListening("r1", 1)

	s.expectDisconnect().Times(1)
	s.c.Update(s.ctx, "r2", 0)
}

func (s *ControllerTestSuite) TestLeavingRoomDisconnectsManual() {
	s.joinListening("r1", 1)
	s.expectConnect("r1", false)
	s.c.Connect(s.ctx, "r1")

	s.expectDisconnect().Times(1)
	s.c.Update(s.ctx, "", 0)
}

func (s *ControllerTestSuite) TestUserDisconnectSuppressesAutoConnect() {
	s.joinListening("r1", 2)

	s.expectDisconnect()
	s.c.Disconnect(s.ctx)
	s.c.Update(s.ctx, "r1", 2)

	s.expectConnect("r1", false)
	s.c.Update(s.ctx, "r1", 3)
	s.Equal(voice.StatusConnected, s.state.Status())
}

func (s *ControllerTestSuite) TestUnmutePermissionDenied() {
	s.joinListening("r1", 1)
	s.perms.EXPECT().RequestMicrophone(gomock.Any()).Return(false, nil).Times(2)

	s.False(s.c.Unmute(s.ctx))
	s.False(s.c.Unmute(s.ctx))

	s.False(s.c.IsMicrophoneEnabled())
	s.Equal(voice.StatusConnected, s.state.Status())
	s.Eventually(func() bool {
		errs, _, _, _ := s.ui.snapshot()
		return len(errs) == 2
	}, time.Second, time.Millisecond)
	errs, _, _, _ := s.ui.snapshot()
	s.ErrorIs(errs[0], voice.ErrPermissionDenied)
}

func (s *ControllerTestSuite) TestUnmutePromptFailure() {
	s.joinListening("r1", 1)
	s.perms.EXPECT().RequestMicrophone(gomock.Any()).Return(false, errors.PureNew("no prompt available"))

	s.False(s.c.Unmute(s.ctx))
	s.Eventually(func() bool {
		errs, _, _, _ := s.ui.snapshot()
		return len(errs) == 1 && errors.Is(errs[0], voice.ErrPermissionDenied)
	}, time.Second, time.Millisecond)
}

func (s *ControllerTestSuite) TestUnmuteAsksPermissionOnce() {
	s.c.Update(s.ctx, "r1", 0)
	s.perms.EXPECT().RequestMicrophone(gomock.Any()).Return(true, nil).Times(1)
	s.expectConnect("r1", true).Times(2)

	s.True(s.c.Unmute(s.ctx))
	s.True(s.c.IsMicrophoneEnabled())
	s.True(s.c.Snapshot().Manual)

	s.mgr.EXPECT().SetMicrophoneEnabled(gomock.Any(), false).DoAndReturn(s.state.setMic)
	s.c.Mute(s.ctx)
	s.False(s.c.IsMicrophoneEnabled())

	s.True(s.c.Unmute(s.ctx))
}

func (s *ControllerTestSuite) TestUnmuteWithoutRoom() {
	s.False(s.c.Unmute(s.ctx))
}

func (s *ControllerTestSuite) TestBackgroundMutesThenTearsDown() {
	s.c.Update(s.ctx, "r1", 0)
	s.perms.EXPECT().RequestMicrophone(gomock.Any()).Return(true, nil)
	s.expectConnect("r1", true)
	s.Require().True(s.c.Unmute(s.ctx))

	s.mgr.EXPECT().SetMicrophoneEnabled(gomock.Any(), false).DoAndReturn(s.state.setMic)
	s.c.SetAppState(s.ctx, voice.AppStateBackground)
	s.False(s.state.MicrophoneEnabled())
	s.False(s.c.IsMicrophoneEnabled())
	s.False(s.c.Unmute(s.ctx))

	done := make(chan struct{})
	s.expectDisconnect().Do(func(ctx context.Context) {
		s.state.disconnect(ctx)
		close(done)
	})
	s.settleGrace()
	s.clock.Advance(10*time.Second - time.Millisecond)
	s.Equal(voice.StatusConnected, s.state.Status())

	s.clock.Advance(time.Millisecond)
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("grace teardown did not happen")
	}
	s.Equal(voice.StatusDisconnected, s.state.Status())
	s.False(s.c.Snapshot().Manual)
}

func (s *ControllerTestSuite) TestForegroundBeforeGraceKeepsConnectionMuted() {
	s.joinListening("r1", 1)
	s.c.SetAppState(s.ctx, voice.AppStateBackground)
	s.settleGrace()
	s.True(s.c.sched.Pending(backgroundKey))

	s.clock.Advance(5 * time.Second)
	s.c.SetAppState(s.ctx, voice.AppStateForeground)
	s.False(s.c.sched.Pending(backgroundKey))

	s.clock.Advance(time.Minute)
	s.Equal(voice.StatusConnected, s.state.Status())
	s.False(s.c.IsMicrophoneEnabled())
	_, _, _, autoMuted := s.ui.snapshot()
	s.Zero(autoMuted)
}

func (s *ControllerTestSuite) TestForegroundAfterGraceReconnectsListenOnly() {
	s.joinListening("r1", 1)

	done := make(chan struct{})
	s.expectDisconnect().Do(func(ctx context.Context) {
		s.state.disconnect(ctx)
		close(done)
	})
	s.c.SetAppState(s.ctx, voice.AppStateBackground)
	s.settleGrace()
	s.clock.Advance(10 * time.Second)
	<-done

	// no auto connect while in background
	s.c.Update(s.ctx, "r1", 1)

	s.expectConnect("r1", false)
	s.c.SetAppState(s.ctx, voice.AppStateForeground)

	s.Equal(voice.StatusConnected, s.state.Status())
	s.Eventually(func() bool {
		_, _, _, autoMuted := s.ui.snapshot()
		return autoMuted == 1
	}, time.Second, time.Millisecond)
}

func (s *ControllerTestSuite) TestBackgroundWhileDisconnectedArmsNothing() {
	s.c.SetAppState(s.ctx, voice.AppStateBackground)
	s.False(s.c.sched.Pending(backgroundKey))
	s.Equal(voice.AppStateBackground, s.c.Snapshot().AppState)
}

func (s *ControllerTestSuite) TestInactiveIsIgnored() {
	s.joinListening("r1", 1)
	s.c.SetAppState(s.ctx, voice.AppStateInactive)

	s.Equal(voice.AppStateForeground, s.c.Snapshot().AppState)
	s.False(s.c.sched.Pending(backgroundKey))
}

func (s *ControllerTestSuite) TestAllSilentLeavesAndStaysOut() {
	s.joinListening("r1", 2)

	done := make(chan struct{})
	s.expectDisconnect().Do(func(ctx context.Context) {
		s.state.disconnect(ctx)
		close(done)
	})
	s.cb.OnAllSilent()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.FailNow("silence teardown did not happen")
	}

	s.c.Update(s.ctx, "r1", 2)
	s.Equal(voice.StatusDisconnected, s.state.Status())

	s.expectConnect("r1", false)
	s.c.Update(s.ctx, "r1", 1)
	s.Equal(voice.StatusConnected, s.state.Status())

	_, _, silent, _ := s.ui.snapshot()
	s.Equal(1, silent)
}

func (s *ControllerTestSuite) TestSpeakingAggregation() {
	s.joinListening("r1", 2)

	s.cb.OnParticipantSpeaking("alice", true)
	s.cb.OnParticipantSpeaking("alice", true)
	s.cb.OnParticipantSpeaking("bob", true)
	s.cb.OnParticipantSpeaking("bob", false)

	s.True(s.c.IsParticipantSpeaking("alice"))
	s.False(s.c.IsParticipantSpeaking("bob"))
	s.Equal([]string{"alice"}, s.c.Snapshot().Speaking)

	s.cb.OnConnectionStatusChange(voice.StatusDisconnected)
	s.False(s.c.IsParticipantSpeaking("alice"))

	s.Eventually(func() bool {
		_, speaking, _, _ := s.ui.snapshot()
		return len(speaking) == 4
	}, time.Second, time.Millisecond)
	_, speaking, _, _ := s.ui.snapshot()
	s.Equal([]string{"+alice", "+bob", "-bob", "-alice"}, speaking)
}

func (s *ControllerTestSuite) TestForwardsStatusAndErrors() {
	s.cb.OnConnectionStatusChange(voice.StatusConnecting)
	s.cb.OnError(errors.New(voice.ErrTokenIssue, "backend down"))

	s.Eventually(func() bool {
		errs, _, _, _ := s.ui.snapshot()
		return len(errs) == 1
	}, time.Second, time.Millisecond)
	s.ui.mu.Lock()
	defer s.ui.mu.Unlock()
	s.Equal([]voice.ConnectionStatus{voice.StatusConnecting}, s.ui.statuses)
	s.ErrorIs(s.ui.errs[0], voice.ErrTokenIssue)
}

func (s *ControllerTestSuite) TestSetSilenceTimeout() {
	s.mgr.EXPECT().SetSilenceTimeout(2 * time.Minute)
	s.c.SetSilenceTimeout(2 * time.Minute)
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestValid() {
	s.NoError((&Config{}).Validate())
	s.NoError((&Config{BackgroundGrace: time.Second, MicPermission: PermissionDenied}).Validate())
}

func (s *ConfigTestSuite) TestInvalid() {
	s.ErrorIs((&Config{BackgroundGrace: -time.Second}).Validate(), ErrInvalidConfig)
	s.ErrorIs((&Config{MicPermission: "ask"}).Validate(), ErrInvalidConfig)
}

func (s *ConfigTestSuite) TestStaticPermissions() {
	granted, err := NewStaticPermissions(&Config{}).RequestMicrophone(context.Background())
	s.NoError(err)
	s.True(granted)

	granted, err = NewStaticPermissions(&Config{MicPermission: PermissionDenied}).RequestMicrophone(context.Background())
	s.NoError(err)
	s.False(granted)
}
