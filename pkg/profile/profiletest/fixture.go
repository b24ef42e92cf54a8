// Package profiletest provides a shared profile fixture for tests.
package profiletest

import (
	"testing"

	"github.com/nikogura/resume-batch/pkg/profile"
)

// Owner is the file-name suffix derived from the fixture's name.
const Owner = "Jordan_Lee"

// JSON is a complete profile document with three projects and two competitions.
const JSON = `{
  "personal_info": {
    "name": "Jordan Lee",
    "phone": "(555) 010-2030",
    "email": "jordan.lee@example.com",
    "linkedin": "linkedin.com/in/jordanlee"
  },
  "education": [
    {
      "school": "Columbia University",
      "location": "New York, NY",
      "degree": "M.S. Financial Engineering",
      "gpa": "3.9/4.0",
      "date": "Dec 2025"
    },
    {
      "school": "University of Toronto",
      "location": "Toronto, ON",
      "degree": "B.Sc. Mathematics",
      "date": "May 2024"
    }
  ],
  "skills": {
    "technical": ["C++", "Python", "SQL", "KDB+/q", "CUDA"],
    "other": ["Stochastic Calculus", "Time Series Analysis", "Public Speaking", "Bloomberg Terminal"],
    "certifications": ["CFA Level I", "FRM Part I"]
  },
  "experience_data": [
    {
      "employer": "Anacapa Advisors",
      "role": "Quantitative Research Intern",
      "location": "United States",
      "dates": "June 2025 -- September 2025",
      "bullets": [
        "Built a volatility surface fitter in Python that reduced calibration time by 50%.",
        "Backtested 30+ intraday signals on 100K+ instruments with a vectorised pipeline.",
        "Presented findings to the PM team weekly."
      ]
    }
  ],
  "extras_pool": {
    "projects": [
      {
        "title": "Options Pricing Engine",
        "keywords": ["options pricing", "black-scholes", "monte carlo", "c++"],
        "bullets": [
          "Implemented Black-Scholes and Monte Carlo pricers in C++ with sub-140 ns per quote.",
          "Validated Greeks against QuantLib to within 0.01%."
        ]
      },
      {
        "title": "Low Latency Order Book",
        "keywords": ["low latency", "order book", "c++", "market microstructure"],
        "bullets": [
          "Designed a lock-free limit order book handling 5M messages per second.",
          "Profiled cache misses and cut tail latency by 30%."
        ]
      },
      {
        "title": "Sentiment Dashboard",
        "keywords": ["nlp", "dashboards", "react"],
        "bullets": [
          "Scraped news headlines and scored sentiment with a fine-tuned transformer.",
          "Served charts from a React dashboard."
        ]
      }
    ],
    "competitions": [
      {
        "title": "IMC Prosperity Trading Challenge",
        "keywords": ["market making", "options", "python"],
        "bullets": [
          "Placed top 3% of 9,000 teams with a market-making and options arbitrage strategy.",
          "Modelled fair value with rolling regressions."
        ]
      },
      {
        "title": "Kaggle Credit Risk",
        "keywords": ["machine learning", "credit risk", "gradient boosting"],
        "bullets": [
          "Trained gradient boosting models on 300K loan applications.",
          "Reached top 10% on the private leaderboard."
        ]
      }
    ]
  },
  "course_pool": {
    "Columbia University": ["Stochastic Methods", "Derivatives Pricing", "Machine Learning for Finance", "Optimization"],
    "University of Toronto": ["Real Analysis", "Probability Theory", "Numerical Methods"]
  },
  "additional_info": {
    "languages": ["English", "Mandarin", "French"],
    "interests": ["Market microstructure", "Chess engines"],
    "hobbies": ["Climbing", "Jazz piano"]
  }
}`

// Profile parses the fixture, failing the test on error.
func Profile(t testing.TB) (p *profile.Profile) {
	t.Helper()

	p, err := profile.Parse([]byte(JSON))
	if err != nil {
		t.Fatalf("Failed to parse fixture profile: %v", err)
	}

	return p
}
