package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"github.com/truthlens/backend/internal/domain"
)

// AnalysisConfig holds configuration for the analysis service.
type AnalysisConfig struct {
	MinTextLength      int
	MaxTextLength      int
	EnableDebugLogging bool
}

// AnalysisService runs the four-stage pipeline: claim extraction,
// feasibility verification, price analysis, and scoring. Results are
// memoized in a bounded cache keyed by a content hash of the input; the
// pipeline is referentially transparent, so cached results are exact.
type AnalysisService struct {
	source      domain.ProductSource
	cache       domain.AnalysisCache
	extractor   *ClaimExtractor
	feasibility *FeasibilityEngine
	pricing     *PricingEngine
	scoring     *ScoringEngine

	minTextLength int
	maxTextLength int
	debug         bool
}

// NewAnalysisService creates the analysis service with its dependencies.
// The engines are immutable rule tables built once and shared by reference.
func NewAnalysisService(source domain.ProductSource, cache domain.AnalysisCache, config AnalysisConfig) *AnalysisService {
	minLen := config.MinTextLength
	if minLen <= 0 {
		minLen = 10
	}
	maxLen := config.MaxTextLength
	if maxLen <= 0 {
		maxLen = 10000
	}

	return &AnalysisService{
		source:        source,
		cache:         cache,
		extractor:     NewClaimExtractor(),
		feasibility:   NewFeasibilityEngine(),
		pricing:       NewPricingEngine(),
		scoring:       NewScoringEngine(),
		minTextLength: minLen,
		maxTextLength: maxLen,
		debug:         config.EnableDebugLogging,
	}
}

// Analyze runs the full pipeline for a URL or text request.
// Flow: validate -> check cache -> resolve ProductData -> extract claims ->
// verify -> price -> score -> cache -> return.
func (s *AnalysisService) Analyze(ctx context.Context, request *domain.AnalyzeRequest) (*domain.ProductAnalysis, error) {
	if err := s.validate(request); err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(request)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			if s.debug {
				log.Printf("[ANALYZE] cache hit for key %s", cacheKey[:12])
			}
			return cached, nil
		}
	}

	product, err := s.resolveProduct(ctx, request)
	if err != nil {
		return nil, err
	}

	analysis := s.runPipeline(product)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, analysis); err != nil && s.debug {
			log.Printf("[ANALYZE] cache set failed: %v", err)
		}
	}

	return analysis, nil
}

// ExtractClaims resolves the product and runs only the extraction stage.
func (s *AnalysisService) ExtractClaims(ctx context.Context, request *domain.AnalyzeRequest) (*domain.ProductData, []domain.Claim, error) {
	if err := s.validate(request); err != nil {
		return nil, nil, err
	}

	product, err := s.resolveProduct(ctx, request)
	if err != nil {
		return nil, nil, err
	}

	return product, s.extractor.ExtractClaims(product), nil
}

// VerifyClaim verifies one caller-supplied claim without extraction.
func (s *AnalysisService) VerifyClaim(claim domain.Claim) domain.ClaimVerification {
	return s.feasibility.VerifyClaim(claim)
}

// runPipeline is the pure core: ProductData in, ProductAnalysis out.
func (s *AnalysisService) runPipeline(product *domain.ProductData) *domain.ProductAnalysis {
	claims := s.extractor.ExtractClaims(product)
	verifications := s.feasibility.VerifyClaims(claims)
	priceAnalysis := s.pricing.AnalyzePrice(product, claims)

	if s.debug {
		log.Printf("[ANALYZE] %q: %d claims, %d verifications, priced=%v",
			product.Title, len(claims), len(verifications), priceAnalysis != nil)
	}

	return s.scoring.GenerateAnalysis(product, claims, verifications, priceAnalysis)
}

func (s *AnalysisService) validate(request *domain.AnalyzeRequest) error {
	if request == nil {
		return domain.ErrInvalidInput
	}

	hasURL := request.URL != ""
	hasText := request.Text != ""

	if hasURL == hasText {
		// Neither or both.
		return fmt.Errorf("%w: provide exactly one of url or text", domain.ErrInvalidInput)
	}

	if hasText {
		trimmed := strings.TrimSpace(request.Text)
		if len(trimmed) < s.minTextLength {
			return fmt.Errorf("%w: need at least %d characters", domain.ErrTextTooShort, s.minTextLength)
		}
		if len(request.Text) > s.maxTextLength {
			return fmt.Errorf("%w: limit is %d characters", domain.ErrTextTooLong, s.maxTextLength)
		}
	}

	return nil
}

func (s *AnalysisService) resolveProduct(ctx context.Context, request *domain.AnalyzeRequest) (*domain.ProductData, error) {
	if request.URL != "" {
		return s.source.FromURL(ctx, request.URL)
	}
	return s.source.FromText(request.Text)
}

// cacheKey fingerprints the input: the URL, or the first 500 characters of
// the text.
func (s *AnalysisService) cacheKey(request *domain.AnalyzeRequest) string {
	input := request.URL
	if input == "" {
		input = request.Text
		if len(input) > 500 {
			input = input[:500]
		}
	}

	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
