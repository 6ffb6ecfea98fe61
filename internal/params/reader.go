package params

import (
	"os"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Warner

type Warner interface {
	Warn(message string)
}

type Reader struct {
	logger   Warner
	readFile func(filename string) ([]byte, error)
}

func NewReader(logger Warner) *Reader {
	return &Reader{
		logger:   logger,
		readFile: os.ReadFile,
	}
}
