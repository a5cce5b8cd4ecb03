package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/CuteZaiyuan2333/Somnium/sdf"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/fogleman/fauxgl"
	"github.com/joho/godotenv"
)

// --- Constants and Global Variables ---
const (
	Scale         = 2
	FovY          = 50
	Near          = 0.1
	Far           = 1000.0
	Dimensions    = 512
	DefaultColor  = "#33b3ff"
	DefaultFrames = 60
	DefaultDelay  = 5 // hundredths of a second, 20 fps
	MaxFrames     = 240
	RenderTimeout = 20 * time.Second
	UploadTimeout = 10 * time.Second
)

var (
	eye    = fauxgl.V(0, 2.5, 5)
	center = fauxgl.V(0, 0, 0)
	up     = fauxgl.V(0, 1, 0)
)

// FrameConfig describes a single still of the scene.
type FrameConfig struct {
	Color string  `json:"color"`
	Time  float64 `json:"time"`
}

// AnimationConfig describes an animated preview. Step is the clock advance
// per frame in seconds; zero means one full oscillation over Frames frames.
type AnimationConfig struct {
	Color  string  `json:"color"`
	Time   float64 `json:"time"`
	Frames int     `json:"frames"`
	Delay  int     `json:"delay"`
	Step   float64 `json:"step"`
}

type FrameEvent struct {
	Hash       string      `json:"Hash"`
	RenderJson FrameConfig `json:"RenderJson"`
}

type AnimationEvent struct {
	Hash       string          `json:"Hash"`
	RenderJson AnimationConfig `json:"RenderJson"`
}

type Config struct {
	PostKey       string
	ServerAddress string
	S3AccessKey   string
	S3SecretKey   string
	S3Endpoint    string
	S3Region      string
	S3Bucket      string
	RootDir       string
}

// Holds shared dependencies like config and the S3 client.
type Server struct {
	config     *Config
	s3Uploader *s3.S3
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Initializes everything once.
func main() {
	rootDir := getEnv("RENDERER_ROOT_DIR", "/var/www/renderer")
	_ = godotenv.Load(path.Join(rootDir, ".env"))

	cfg := &Config{
		PostKey:       os.Getenv("POST_KEY"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3Region:      os.Getenv("S3_REGION"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		RootDir:       rootDir,
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Endpoint:         aws.String(cfg.S3Endpoint),
		Region:           aws.String(cfg.S3Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	sess, err := session.NewSession(s3Config)
	if err != nil {
		log.Fatalf("Failed to create S3 session: %v", err)
	}

	server := &Server{
		config:     cfg,
		s3Uploader: s3.New(sess),
	}

	http.HandleFunc("/", server.handleRender)

	fmt.Printf("Starting server on %s\n", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, nil); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}

// --- Request Type Identifier ---
type RenderRequestType struct {
	RenderType string `json:"RenderType"`
}

// --- Central HTTP Handler ---
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if s.config.PostKey != "" && r.Header.Get("Aeo-Access-Key") != s.config.PostKey {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Peek at the RenderType
	var reqType RenderRequestType
	if err := json.Unmarshal(body, &reqType); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	log.Printf("Received RenderType: %s", reqType.RenderType)

	switch reqType.RenderType {
	case "frame":
		var e FrameEvent
		if err := json.Unmarshal(body, &e); err != nil {
			http.Error(w, "Invalid frame render body", http.StatusBadRequest)
			return
		}
		s.handleFrameRender(w, r, e)
	case "animation":
		var a AnimationEvent
		if err := json.Unmarshal(body, &a); err != nil {
			http.Error(w, "Invalid animation render body", http.StatusBadRequest)
			return
		}
		s.handleAnimationRender(w, r, a)
	default:
		http.Error(w, "Unknown RenderType", http.StatusBadRequest)
	}
}

// buildScene turns request material values into the per-frame snapshot the
// kernel reads.
func buildScene(hex string, t float64) *sdf.Scene {
	if hex == "" {
		hex = DefaultColor
	}
	return sdf.NewScene(fauxgl.HexColor(hex), t)
}

func (s *Server) runRenderWithTimeout(render func(w io.Writer) error) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), RenderTimeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{nil, fmt.Errorf("panic in renderer: %v", r)}
			}
		}()

		var buf bytes.Buffer
		err := render(&buf)
		resChan <- result{data: buf.Bytes(), err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("render timeout")
	case res := <-resChan:
		return res.data, res.err
	}
}

func (s *Server) handleFrameRender(w http.ResponseWriter, r *http.Request, e FrameEvent) {
	start := time.Now()
	scene := buildScene(e.RenderJson.Color, e.RenderJson.Time)

	buf, err := s.runRenderWithTimeout(func(out io.Writer) error {
		return sdf.GenerateFrameToWriter(out, scene, eye, center, up, FovY, Dimensions, Scale, Near, Far)
	})
	if err != nil {
		log.Printf("Frame render failed: %v", err)
		http.Error(w, "Render failed", http.StatusGatewayTimeout)
		return
	}

	outputKey := path.Join("thumbnails", e.Hash+".png")
	if err := s.uploadToS3(r.Context(), buf, outputKey, "image/png"); err != nil {
		log.Printf("Frame upload failed: %v", err)
		http.Error(w, "Upload failed", http.StatusInternalServerError)
		return
	}

	log.Printf("Frame render %s finished in %v", e.Hash, time.Since(start))
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Frame processed.")
}

func (s *Server) handleAnimationRender(w http.ResponseWriter, r *http.Request, a AnimationEvent) {
	start := time.Now()
	cfg := a.RenderJson

	frames := cfg.Frames
	if frames <= 0 {
		frames = DefaultFrames
	}
	if frames > MaxFrames {
		frames = MaxFrames
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	step := cfg.Step
	if step <= 0 {
		// One full oscillation of the box over the whole clip.
		step = 2 * math.Pi / float64(frames)
	}

	scene := buildScene(cfg.Color, cfg.Time)
	buf, err := s.runRenderWithTimeout(func(out io.Writer) error {
		return sdf.GenerateAnimationToWriter(out, scene, frames, delay, step, eye, center, up, FovY, Dimensions, Scale, Near, Far)
	})
	if err != nil {
		log.Printf("Animation render failed: %v", err)
		http.Error(w, "Render failed", http.StatusGatewayTimeout)
		return
	}

	outputKey := path.Join("thumbnails", a.Hash+".gif")
	if err := s.uploadToS3(r.Context(), buf, outputKey, "image/gif"); err != nil {
		log.Printf("Animation upload failed: %v", err)
		http.Error(w, "Upload failed", http.StatusInternalServerError)
		return
	}

	log.Printf("Animation render %s (%d frames) finished in %v", a.Hash, frames, time.Since(start))
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Animation processed.")
}

func (s *Server) uploadToS3(ctx context.Context, data []byte, key, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := s.s3Uploader.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})

	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to S3 (%d bytes)", key, size)
	return nil
}
