package main

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/flarexio/technozen/conf"
)

// newLogger always logs to the console. Request and error logs are
// additionally written as JSON lines when their files are configured.
func newLogger(cfg conf.Log) (*zap.Logger, func(), error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, err
		}

		level = l
	}

	console := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(console, zapcore.Lock(os.Stdout), level),
	}

	var files []*os.File
	closeFiles := func() {
		for _, f := range files {
			f.Close()
		}
	}

	sinks := []struct {
		path  string
		level zapcore.Level
	}{
		{cfg.Requests, level},
		{cfg.Errors, zapcore.ErrorLevel},
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	for _, sink := range sinks {
		if sink.path == "" {
			continue
		}

		path := sink.path
		if !filepath.IsAbs(path) {
			path = filepath.Join(conf.Path, path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			closeFiles()
			return nil, nil, err
		}

		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			closeFiles()
			return nil, nil, err
		}
		files = append(files, f)

		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(f), sink.level))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return log, closeFiles, nil
}
