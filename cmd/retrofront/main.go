package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/cloudretro/retrofront/pkg/config"
	"github.com/cloudretro/retrofront/pkg/logger"
	"github.com/cloudretro/retrofront/pkg/monitoring"
	"github.com/cloudretro/retrofront/pkg/os"
	"github.com/cloudretro/retrofront/pkg/retro"
	"github.com/cloudretro/retrofront/pkg/retro/core"
	"github.com/cloudretro/retrofront/pkg/retro/manager"
	"github.com/cloudretro/retrofront/pkg/retro/video"
)

var Version = "?"

func init() {
	// SDL and GL want the main thread
	runtime.LockOSThread()
}

func main() {
	var (
		confDir string
		rom     string
		system  string
		session string
		resume  bool
		debug   bool
	)
	flag.StringVar(&confDir, "conf", "", "directory with the configuration file")
	flag.StringVar(&rom, "rom", "", "path of the game to run")
	flag.StringVar(&system, "system", "", "core system to use (guessed from the ROM extension if empty)")
	flag.StringVar(&session, "session", "", "name of the save session (the ROM name if empty)")
	flag.BoolVar(&resume, "resume", false, "restore the last savestate of the session on start")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.Parse()

	log := logger.NewConsole(debug, "rf", false)
	log.Info().Msgf("version %s", Version)

	var conf config.Config
	if err := config.LoadConfig(&conf, confDir); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}
	if rom == "" {
		log.Fatal().Msg("no ROM given, see --help")
	}
	if system == "" {
		system = conf.Emulator.GetSystem(strings.TrimPrefix(filepath.Ext(rom), "."))
	}
	coreConf := conf.Emulator.GetCoreConfig(system)
	if system == "" || coreConf.Lib == "" {
		log.Fatal().Msgf("no core configured for %v", rom)
	}

	monit := monitoring.New(conf.Monitoring, log.Extend(log.With().Str("m", "monit")))
	if monit.Enabled() {
		go monit.Run()
		defer func() { _ = monit.Shutdown(context.Background()) }()
	}

	mlog := log.Extend(log.With().Str("m", "manager"))
	if err := manager.CheckCores(conf.Emulator, mlog); err != nil {
		log.Fatal().Err(err).Msg("core sync failed")
	}
	if conf.Emulator.Libretro.Cores.Repo.Sync {
		coreManager := manager.NewRemoteHttpManager(conf.Emulator.Libretro, mlog)
		stop := make(chan struct{})
		defer close(stop)
		go coreManager.Watch(stop, func(cores []config.CoreInfo) {
			mlog.Info().Msgf("core store changed, %v cores installed", len(cores))
		})
	}

	if err := run(conf, coreConf, rom, session, resume, log); err != nil {
		log.Fatal().Err(err).Msg("frontend failed")
	}
}

func run(conf config.Config, coreConf config.CoreConfig, rom, session string, resume bool, log *logger.Logger) error {
	arch, err := manager.GuessArch()
	if err != nil {
		return err
	}

	c, err := core.Load(coreConf.Lib+arch.Ext, core.Config{
		SaveDir:   filepath.Join(conf.Emulator.LocalPath, "save"),
		SystemDir: filepath.Join(conf.Emulator.LocalPath, "system"),
		CanDupe:   true,
		Options:   coreConf.Options,
	}, log.Extend(log.With().Str("m", "core")))
	if err != nil {
		return err
	}
	sys := retro.NewSystem(c, log.Extend(log.With().Str("m", "retro")))
	defer func() { _ = sys.Close() }()

	if err := os.CheckCreateDir(conf.Emulator.Storage); err != nil {
		return err
	}
	if session == "" {
		session = strings.TrimSuffix(filepath.Base(rom), filepath.Ext(rom))
	}
	var store retro.Storage = retro.NewStateStorage(conf.Emulator.Storage, session)
	if conf.Emulator.Libretro.SaveCompression {
		store = &retro.ZipStorage{Storage: store}
	}

	game := retro.Game{Path: rom}
	if sram, err := store.Load(store.GetSRAMPath()); err == nil {
		game.SaveRAM = sram
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("couldn't read the SRAM file")
	}
	if err := sys.LoadGame(game); err != nil {
		return err
	}
	if resume {
		if st, err := store.Load(store.GetStatePath()); err == nil {
			if err := sys.Unserialize(st); err != nil {
				log.Warn().Err(err).Msg("couldn't resume the savestate")
			}
		}
	}

	av := c.AVInfo()
	w := int(float64(av.BaseWidth) * conf.Video.Scale)
	h := int(float64(av.BaseHeight) * conf.Video.Scale)
	screen, err := video.NewSDLContext(video.WindowConfig{Title: "retrofront: " + session, W: w, H: h, Hidden: conf.Video.Hidden})
	if err != nil {
		return err
	}
	defer func() { _ = screen.Deinit() }()

	var program uint32
	if conf.Video.Shader != "" {
		shader, err := video.LoadShader(conf.Video.Shader)
		if err != nil {
			return err
		}
		if program, err = shader.Compile(); err != nil {
			return err
		}
	}
	present := video.NewPresenter(w, h, program)
	present.SetRotation(c.Rotation())

	renderer, err := video.NewRenderer(av.MaxWidth, av.MaxHeight, c.PixFormat(), present.Present,
		log.Extend(log.With().Str("m", "video")))
	if err != nil {
		return err
	}
	defer renderer.Close()

	var input retro.InputState
	var buttons uint16
	var shot bool
	canvas := video.NewCanvas(video.ScaleNot)
	cb := c.Callbacks()
	cb.SetVideoRefresh(func(data []byte, w, h, pitch uint) {
		if shot && data != nil {
			shot = false
			frame := canvas.Draw(c.PixFormat(), data, int(w), int(h), int(pitch), int(w), int(h))
			var buf bytes.Buffer
			if err := png.Encode(&buf, frame); err != nil {
				log.Error().Err(err).Msg("screenshot encode failed")
			} else {
				name := filepath.Join(conf.Emulator.Storage, session+".png")
				if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
					log.Error().Err(err).Msg("screenshot save failed")
				} else {
					log.Info().Msgf("Screenshot saved to %v", name)
				}
			}
		}
		renderer.Refresh(data, w, h, pitch)
	})
	cb.SetInputState(input.State)

	saveAll := func() {
		if sram, err := sys.SaveData(); err == nil && sram != nil {
			if err := store.Save(store.GetSRAMPath(), sram); err != nil {
				log.Error().Err(err).Msg("SRAM save failed")
			}
		}
		if st, err := sys.Serialize(); err == nil {
			if err := store.Save(store.GetStatePath(), st); err != nil {
				log.Error().Err(err).Msg("savestate save failed")
			}
		}
	}

	var autosave <-chan time.Time
	if conf.Emulator.AutosaveSec > 0 {
		t := time.NewTicker(time.Duration(conf.Emulator.AutosaveSec) * time.Second)
		defer t.Stop()
		autosave = t.C
	}

	fps, err := sys.RefreshRate()
	if err != nil {
		return err
	}
	if fps <= 0 {
		fps = 60
	}
	frame := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer frame.Stop()
	terminated := os.ExpectTermination()

	log.Info().Msgf("Running %v at %.2f fps", rom, fps)
	for {
		select {
		case <-terminated:
			saveAll()
			return nil
		case <-autosave:
			saveAll()
		case <-frame.C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch e := event.(type) {
				case *sdl.QuitEvent:
					saveAll()
					return nil
				case *sdl.KeyboardEvent:
					if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_F12 {
						shot = true
						continue
					}
					bit, ok := keymap[e.Keysym.Scancode]
					if !ok {
						continue
					}
					if e.Type == sdl.KEYDOWN {
						buttons |= bit
					} else {
						buttons &^= bit
					}
					input.SetInput(0, []byte{byte(buttons), byte(buttons >> 8)})
				}
			}
			start := time.Now()
			if err := sys.Run(); err != nil {
				return err
			}
			monitoring.FrameTime.Observe(time.Since(start).Seconds())
			monitoring.Frames.Inc()
			screen.Swap()
		}
	}
}
