package passwd

import (
	"github.com/infodancer/mailseed"
	"github.com/infodancer/mailseed/errors"
)

func init() {
	mailseed.RegisterDirectory("passwd", func(config mailseed.DirectoryConfig) (mailseed.Directory, error) {
		if config.Path == "" {
			return nil, errors.ErrDirectoryConfigInvalid
		}
		return NewDirectory(config.Path, nil), nil
	})
}
