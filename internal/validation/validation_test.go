package validation

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ValidationTestSuite struct {
	suite.Suite
	validator *validator.Validate
}

func (s *ValidationTestSuite) SetupTest() {
	s.validator = validator.New()
	s.Require().NoError(RegisterTags(s.validator))
}

func TestValidationTestSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidateRoomID() {
	tests := []struct {
		name    string
		roomID  string
		wantErr bool
	}{
		{name: "alphanumeric", roomID: "room123"},
		{name: "hyphen and underscore", roomID: "My-Room_123"},
		{name: "single char", roomID: "a"},
		{name: "matrix style", roomID: "abc:example.org"},
		{name: "email style", roomID: "team@example.org"},
		{name: "max length", roomID: strings.Repeat("a", 128)},
		{name: "too long", roomID: strings.Repeat("a", 129), wantErr: true},
		{name: "empty", roomID: "", wantErr: true},
		{name: "space", roomID: "room 123", wantErr: true},
		{name: "slash", roomID: "room/123", wantErr: true},
		{name: "query", roomID: "room?x=1", wantErr: true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			type TestStruct struct {
				RoomID string `validate:"roomid"`
			}
			err := s.validator.Struct(TestStruct{RoomID: tt.roomID})
			if tt.wantErr {
				s.Require().Error(err, "roomID %q", tt.roomID)
			} else {
				s.Require().NoError(err, "roomID %q", tt.roomID)
			}
		})
	}
}

func (s *ValidationTestSuite) TestAppStateAlias() {
	type TestStruct struct {
		State string `validate:"appstate"`
	}

	for _, state := range []string{"foreground", "background", "inactive"} {
		s.NoError(s.validator.Struct(TestStruct{State: state}), state)
	}
	for _, state := range []string{"", "Background", "suspended"} {
		s.Error(s.validator.Struct(TestStruct{State: state}), state)
	}
}

func (s *ValidationTestSuite) TestSilencePresetAlias() {
	type TestStruct struct {
		Preset string `validate:"omitempty,silencepreset"`
	}

	for _, preset := range []string{"", "aggressive", "balanced", "relaxed", "never"} {
		s.NoError(s.validator.Struct(TestStruct{Preset: preset}), preset)
	}
	s.Error(s.validator.Struct(TestStruct{Preset: "forever"}))
}

func (s *ValidationTestSuite) TestFormatValidationError() {
	type TestStruct struct {
		RoomID string `validate:"required,roomid"`
		State  string `validate:"appstate"`
	}

	err := s.validator.Struct(TestStruct{RoomID: "", State: "asleep"})
	s.Require().Error(err)

	formatted := FormatValidationError(err)
	s.Len(formatted, 2)

	tags := map[string]string{}
	for _, e := range formatted {
		tags[e.Field] = e.Tag
		s.NotEmpty(e.Message)
	}
	s.Equal("required", tags["RoomID"])
	s.Equal("appstate", tags["State"])
}

func (s *ValidationTestSuite) TestFieldsUseWireNames() {
	type TestStruct struct {
		RoomID        string `json:"roomId,omitempty" validate:"roomid"`
		ParticipantID string `uri:"participantId" validate:"required"`
	}

	formatted := FormatValidationError(s.validator.Struct(TestStruct{RoomID: "a b"}))
	s.Require().Len(formatted, 2)
	s.Equal("roomId", formatted[0].Field)
	s.Equal("participantId", formatted[1].Field)
}

func (s *ValidationTestSuite) TestFormatValidationErrorNonValidationError() {
	s.Empty(FormatValidationError(assert.AnError))
	s.Empty(FormatValidationError(nil))
}

func (s *ValidationTestSuite) TestRegisterGin() {
	s.Require().NoError(RegisterGin("test_always_ok", func(validator.FieldLevel) bool { return true }))
	s.Require().NoError(RegisterGinAlias("test_state_alias", "oneof=a b"))
}
