package api

import (
	"errors"
	"io"
	"strconv"

	"github.com/rs/zerolog"
)

func itoa(n uint) string { return strconv.FormatUint(uint64(n), 10) }

func testLogger() zerolog.Logger { return zerolog.New(io.Discard) }

func assertErr(msg string) error { return errors.New(msg) }
