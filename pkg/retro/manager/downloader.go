package manager

import (
	"os"

	"github.com/cavaliercoder/grab"

	"github.com/cloudretro/retrofront/pkg/compression"
	"github.com/cloudretro/retrofront/pkg/logger"
)

type Download struct {
	Key     string
	Address string
}

type Client interface {
	Request(dest string, urls ...Download) ([]string, []string)
}

type Downloader struct {
	backend Client
	// pipe contains a sequential list of
	// operations applied to some files and
	// each operation will return a list of
	// successfully processed files
	pipe []Process
	log  *logger.Logger
}

type Process func(string, []string, *logger.Logger) []string

func NewDefaultDownloader(log *logger.Logger) Downloader {
	return Downloader{
		backend: NewGrabDownloader(log),
		pipe:    []Process{unpackDelete},
		log:     log,
	}
}

// Download tries to download specified with URLs list of files and
// put them into the destination folder.
// It will return a partial or full list of downloaded files,
// a list of processed files if some pipe processing functions are set.
func (d *Downloader) Download(dest string, urls ...Download) ([]string, []string) {
	files, fails := d.backend.Request(dest, urls...)
	for _, op := range d.pipe {
		files = op(dest, files, d.log)
	}
	return files, fails
}

func unpackDelete(dest string, files []string, log *logger.Logger) []string {
	var res []string
	for _, file := range files {
		if unpack := compression.NewFromExt(file, log); unpack != nil {
			if _, err := unpack.Extract(file, dest); err == nil {
				if e := os.Remove(file); e == nil {
					res = append(res, file)
				}
			}
		}
	}
	return res
}

type GrabDownloader struct {
	client      *grab.Client
	concurrency int
	log         *logger.Logger
}

func NewGrabDownloader(log *logger.Logger) GrabDownloader {
	return GrabDownloader{client: grab.NewClient(), concurrency: 5, log: log}
}

// Request downloads the given list of urls into dest, returning the list
// of stored files and the list of keys that couldn't be fetched.
func (d GrabDownloader) Request(dest string, urls ...Download) (files []string, fails []string) {
	keys := make(map[*grab.Request]string, len(urls))
	reqs := make([]*grab.Request, 0, len(urls))
	for _, url := range urls {
		req, err := grab.NewRequest(dest, url.Address)
		if err != nil {
			d.log.Error().Err(err).Msgf("couldn't make request URL: %v", url.Address)
			fails = append(fails, url.Key)
			continue
		}
		keys[req] = url.Key
		reqs = append(reqs, req)
	}

	for resp := range d.client.DoBatch(d.concurrency, reqs...) {
		if err := resp.Err(); err != nil {
			d.log.Error().Err(err).Msgf("download failed: %v", resp.Request.URL())
			fails = append(fails, keys[resp.Request])
		} else {
			d.log.Info().Msgf("Downloaded [%v] %v", resp.HTTPResponse.Status, resp.Filename)
			files = append(files, resp.Filename)
		}
	}
	return
}
