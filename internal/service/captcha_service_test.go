package service

import (
	"errors"
	"testing"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/constants"
)

func TestCaptchaDisabledPassesEveryScene(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: "none", Scenes: config.CaptchaSceneConfig{Register: true}})
	if err := svc.Verify(constants.CaptchaSceneRegister, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled provider should pass, got %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("generate without provider want ErrCaptchaConfigInvalid, got %v", err)
	}
}

func TestCaptchaImageScene(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: "image",
		Scenes:   config.CaptchaSceneConfig{Register: true},
	})
	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("login scene disabled should pass, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneRegister, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("missing payload want ErrCaptchaRequired, got %v", err)
	}
	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}
	err = svc.Verify(constants.CaptchaSceneRegister, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "!!!!!"})
	if !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("wrong code want ErrCaptchaInvalid, got %v", err)
	}
	setting := svc.PublicSetting()
	if setting.Provider != "image" || !setting.Scenes[constants.CaptchaSceneRegister] || setting.Scenes[constants.CaptchaSceneComment] {
		t.Fatalf("unexpected public setting: %+v", setting)
	}
}
