package qrcode

import gridscan "github.com/avniish/gridscan"

func init() {
	gridscan.RegisterReader(gridscan.FormatQRCode, func(opts *gridscan.DecodeOptions) gridscan.Reader {
		return NewReader()
	})
}
