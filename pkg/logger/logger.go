package logger

import (
	"go.uber.org/zap"

	"github.com/d60-Lab/instalite/config"
)

var log = zap.NewNop()

// Init 初始化全局 logger（release 用 JSON，debug 用 console）
func Init(cfg config.Config) error {
	var (
		l   *zap.Logger
		err error
	)
	if cfg.Env == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	log = l.Named(cfg.AppName)
	return nil
}

func Sync() { _ = log.Sync() }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
