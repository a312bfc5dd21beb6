package service

import (
	"context"
	"fmt"
	"kiel-home/internal/domain/model"
	"kiel-home/internal/ports"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// HourService runs the external hourly enactment command.
type HourService struct {
	runner  ports.CommandRunner
	command string
	args    []string
	timeout time.Duration
	log     logrus.FieldLogger
}

func NewHourService(runner ports.CommandRunner, cfg model.ServerConfig, log logrus.FieldLogger) *HourService {
	args := cfg.Args
	if args == nil {
		args = model.DefaultHourArgs
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = model.DefaultHourTimeout
	}
	return &HourService{
		runner:  runner,
		command: cfg.Command,
		args:    args,
		timeout: timeout,
		log:     log,
	}
}

// Execute runs the command once and logs stdout on a zero exit status,
// stderr otherwise. The run is cut off after the configured timeout.
func (s *HourService) Execute(ctx context.Context) (*ports.CommandResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log := s.log.WithField("command", s.command+" "+strings.Join(s.args, " "))
	res, err := s.runner.Run(ctx, s.command, s.args...)
	if err != nil {
		log.WithError(err).Error("hour command failed to run")
		return nil, fmt.Errorf("run %s: %w", s.command, err)
	}

	if res.ExitCode == 0 {
		log.Info(string(res.Stdout))
	} else {
		log.WithField("exit_code", res.ExitCode).Warn(string(res.Stderr))
	}
	return res, nil
}
