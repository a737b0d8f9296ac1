// seehuhn.de/go/sheet - variable-data ticket sheets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command ticketsheet renders a sheet of tickets from a JSON request.
//
// Usage:
//
//	ticketsheet -config request.json -template template.png -font font.ttf -o sheet.pdf -format pdf
//
// The raster formats contain only the first page of tickets.  Fonts given
// by URL are cached in memory, or in Redis if -redis is given.  Use
// -refresh-font to replace a cached font.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/redis/go-redis/v9"
	"golang.org/x/image/draw"
	"golang.org/x/term"

	"seehuhn.de/go/sheet"
	"seehuhn.de/go/sheet/fontcache"
	"seehuhn.de/go/sheet/geometry"
)

var (
	configFile   = flag.String("config", "", "JSON request `file`")
	templateFile = flag.String("template", "", "template image `file` (PNG, JPEG or raw RGBA)")
	templateSize = flag.String("template-size", "", "read -template as raw RGBA of size `WxH`")
	fontFile     = flag.String("font", "", "TrueType or OpenType `file` for text stamps")
	fontURL      = flag.String("font-url", "", "download the font from `url`")
	fontName     = flag.String("font-name", "", "cache key for -font-url (default: the URL)")
	redisAddr    = flag.String("redis", "", "cache downloaded fonts in the Redis server at `addr`")
	refreshFont  = flag.Bool("refresh-font", false, "discard the cached copy of -font-url and download it again")
	format       = flag.String("format", "png", "output format: raw, png or pdf")
	outFile      = flag.String("o", "", "output `file` (default: standard output)")
	verbose      = flag.Bool("v", false, "log progress to standard error")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("ticketsheet: ")

	if *verbose {
		sheet.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	if *configFile == "" || *templateFile == "" {
		flag.Usage()
		return errors.New("-config and -template are required")
	}
	if *fontFile != "" && *fontURL != "" {
		return errors.New("-font and -font-url are mutually exclusive")
	}
	if *outFile == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("refusing to write binary output to a terminal, use -o")
	}

	config, err := os.ReadFile(*configFile)
	if err != nil {
		return err
	}
	req, err := sheet.ParseRequest(config)
	if err != nil {
		return err
	}
	tmpl, err := readTemplate(*templateFile, *templateSize, req)
	if err != nil {
		return err
	}
	font, err := loadFont(ctx)
	if err != nil {
		return err
	}

	var out []byte
	switch *format {
	case "raw":
		out, err = sheet.RenderSheet(config, tmpl, font)
	case "png":
		out, err = renderPNG(req, config, tmpl, font)
	case "pdf":
		out, err = sheet.RenderPDF(config, tmpl, font)
	default:
		return fmt.Errorf("unknown output format %q", *format)
	}
	if err != nil {
		return err
	}

	if *outFile == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(*outFile, out, 0o644)
}

// readTemplate returns the template as RGBA bytes.  Decoded images must
// have the size stated in the request.
func readTemplate(fname, size string, req *sheet.Request) ([]byte, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	if size != "" {
		var w, h int
		if _, err := fmt.Sscanf(size, "%dx%d", &w, &h); err != nil {
			return nil, fmt.Errorf("invalid -template-size %q", size)
		}
		if w != req.TemplateWidth || h != req.TemplateHeight {
			return nil, fmt.Errorf("template is %dx%d, request expects %dx%d",
				w, h, req.TemplateWidth, req.TemplateHeight)
		}
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	b := src.Bounds()
	if b.Dx() != req.TemplateWidth || b.Dy() != req.TemplateHeight {
		return nil, fmt.Errorf("%s: image is %dx%d, request expects %dx%d",
			fname, b.Dx(), b.Dy(), req.TemplateWidth, req.TemplateHeight)
	}
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Rect, src, b.Min, draw.Src)
	return img.Pix, nil
}

func loadFont(ctx context.Context) ([]byte, error) {
	switch {
	case *fontFile != "":
		return os.ReadFile(*fontFile)
	case *fontURL != "":
		var store fontcache.Store
		if *redisAddr != "" {
			client := redis.NewClient(&redis.Options{Addr: *redisAddr})
			defer client.Close()
			store = fontcache.NewRedisStore(client)
		}
		name := *fontName
		if name == "" {
			name = *fontURL
		}
		cache := fontcache.New(store, nil)
		if *refreshFont {
			if err := cache.Forget(ctx, name); err != nil {
				return nil, err
			}
		}
		return cache.Load(ctx, name, *fontURL)
	default:
		return nil, nil
	}
}

func renderPNG(req *sheet.Request, config, tmpl, font []byte) ([]byte, error) {
	pix, err := sheet.RenderSheet(config, tmpl, font)
	if err != nil {
		return nil, err
	}
	l, err := geometry.NewLayout(&req.Sheet, req.DPI)
	if err != nil {
		return nil, err
	}
	img := &image.NRGBA{
		Pix:    pix,
		Stride: 4 * l.PageWidth,
		Rect:   image.Rect(0, 0, l.PageWidth, l.PageHeight),
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
