package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for catalog configuration. All of them are fatal at load time.
var (
	ErrMissingName         = goerr.New("name is required")
	ErrInvalidScheme       = goerr.New("invalid scoring scheme")
	ErrDuplicateCategoryID = goerr.New("duplicate category ID")
	ErrDuplicateQuestionID = goerr.New("duplicate question ID")
	ErrDuplicateOptionID   = goerr.New("duplicate option ID")
	ErrUnknownCategory     = goerr.New("question refers to unknown category")
	ErrInvalidRule         = goerr.New("invalid scoring rule for question")
	ErrMissingOptions      = goerr.New("question requires at least one option")
	ErrPointsOutOfRange    = goerr.New("points out of question range")
	ErrBucketCoverage      = goerr.New("buckets must cover every selection count exactly once")
	ErrBinaryOptions       = goerr.New("binary question must have exactly yes, no and unsure options")
	ErrWeightSum           = goerr.New("category weights must sum to 1")
	ErrTierCoverage        = goerr.New("risk tiers must be contiguous and cover the score domain")
	ErrInvalidBenchmark    = goerr.New("invalid benchmark")
	ErrInvalidReport       = goerr.New("invalid report settings")

	ErrQuestionNotFound = goerr.New("question not found")
	ErrCategoryNotFound = goerr.New("category not found")
)

// Context keys for error values
const (
	CatalogNameKey = "catalog_name"
	QuestionIDKey  = "question_id"
	CategoryIDKey  = "category_id"
	OptionIDKey    = "option_id"
	TierIndexKey   = "tier_index"
	BucketIndexKey = "bucket_index"
	WeightSumKey   = "weight_sum"
)

// WeightTolerance is the accepted distance of the weight sum from 1
const WeightTolerance = 1e-9
