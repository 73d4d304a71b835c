package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/gonewx/particles/pkg/components"
	"github.com/gonewx/particles/pkg/config"
	"github.com/gonewx/particles/pkg/embedded"
)

// ResourceManager is responsible for centralized management of viewer resources.
// It provides loading and caching for particle textures, sound effects and
// particle configurations, so each resource is read only once.
//
// Resources are looked up in the embedded FS first (when initialized) and then on disk.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loads happen on the game loop goroutine.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext)
//	img, err := rm.LoadImage("assets/particles/spark.png")
//	if err != nil {
//	    log.Printf("Failed to load image: %v", err)
//	}
type ResourceManager struct {
	imageCache          map[string]*ebiten.Image          // Cache for loaded images: path -> Image
	audioCache          map[string]*audio.Player          // Cache for loaded sound effects: path -> Player
	audioContext        *audio.Context                    // Global audio context, nil disables audio
	particleConfigCache map[string]*config.ParticleConfig // Cache for loaded particle configs: path -> config
	failedImages        map[string]bool                   // Paths that failed once, not retried every frame
}

// NewResourceManager creates and initializes a new ResourceManager instance.
// audioContext may be nil, in which case LoadSoundEffect always fails.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:          make(map[string]*ebiten.Image),
		audioCache:          make(map[string]*audio.Player),
		audioContext:        audioContext,
		particleConfigCache: make(map[string]*config.ParticleConfig),
		failedImages:        make(map[string]bool),
	}
}

// readResource 优先从嵌入资源读取，否则从磁盘读取
func readResource(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
// Supported formats: PNG (via image/png decoder).
//
// Example:
//
//	img, err := rm.LoadImage("assets/particles/spark.png")
//	if err != nil {
//	    log.Printf("Failed to load image: %v", err)
//	    return err
//	}
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	// Check if the image is already cached
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	data, err := readResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	// Convert to Ebitengine image
	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// Texture resolves a particle texture handle, loading it on first use.
// A handle that failed to load returns nil from then on without retrying.
func (rm *ResourceManager) Texture(handle components.TextureHandle) *ebiten.Image {
	path := string(handle)
	if path == "" || rm.failedImages[path] {
		return nil
	}
	img, err := rm.LoadImage(path)
	if err != nil {
		rm.failedImages[path] = true
		return nil
	}
	return img
}

// LoadSoundEffect loads a one-shot sound effect from the specified path and caches it.
// Supported formats: WAV (.wav), MP3 (.mp3) and OGG Vorbis (.ogg).
//
// Example:
//
//	player, err := rm.LoadSoundEffect("assets/sounds/spawn.wav")
//	if err != nil {
//	    log.Printf("Failed to load sound effect: %v", err)
//	    return err
//	}
//	player.Rewind()
//	player.Play()
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	// Check if the audio is already cached
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("failed to load sound effect %s: no audio context", path)
	}

	// Determine the file format by extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".ogg":
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg)", ext)
	}

	audioData, err := readResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound effect file %s: %w", path, err)
	}

	// Create a reader from the in-memory data
	reader := bytes.NewReader(audioData)

	var stream io.ReadSeeker
	switch ext {
	case ".wav":
		decodedStream, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound effect %s: %w", path, err)
		}
		stream = decodedStream
	case ".mp3":
		decodedStream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", path, err)
		}
		stream = decodedStream
	case ".ogg":
		decodedStream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", path, err)
		}
		stream = decodedStream
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// GetAudioPlayer retrieves a previously loaded audio player from the cache.
func (rm *ResourceManager) GetAudioPlayer(path string) *audio.Player {
	return rm.audioCache[path]
}

// LoadParticleConfig loads and caches a particle configuration.
// The file on disk wins so it can be edited without rebuilding; the embedded
// copy is used when the disk file does not exist.
// A file missing from both returns an error wrapping config.ErrConfigMissingFile.
func (rm *ResourceManager) LoadParticleConfig(path string) (*config.ParticleConfig, error) {
	// Check cache first
	if cfg, exists := rm.particleConfigCache[path]; exists {
		return cfg, nil
	}

	cfg, err := config.LoadParticleConfig(path)
	if errors.Is(err, config.ErrConfigMissingFile) && embedded.IsInitialized() && embedded.Exists(path) {
		cfg, err = config.LoadEmbeddedParticleConfig(path)
	}
	if err != nil {
		return nil, err
	}

	rm.particleConfigCache[path] = cfg
	return cfg, nil
}

// GetParticleConfig retrieves a cached particle configuration.
// Returns nil if the configuration has not been loaded yet.
func (rm *ResourceManager) GetParticleConfig(path string) *config.ParticleConfig {
	return rm.particleConfigCache[path]
}
