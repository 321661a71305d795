package service

import (
	"context"

	"pixelgram/internal/captions"
	"pixelgram/internal/models"
)

// CaptionService validates an uploaded image and asks the inference
// backend to caption it.
type CaptionService struct {
	captioner captions.Captioner
	maxImage  int64
	imageSize int
}

func NewCaptionService(captioner captions.Captioner, maxImageBytes int64, imageSize int) *CaptionService {
	return &CaptionService{captioner: captioner, maxImage: maxImageBytes, imageSize: imageSize}
}

func (s *CaptionService) GenerateCaption(ctx context.Context, in ImageUpload) (*models.Caption, error) {
	pngBytes, err := validateAndEncodeImage(in, s.maxImage, s.imageSize)
	if err != nil {
		return nil, err
	}

	caption, err := s.captioner.GenerateCaption(ctx, pngBytes)
	if err != nil {
		return nil, models.NewUpstreamError("Failed to generate caption.", err)
	}
	return &models.Caption{Caption: caption}, nil
}
