// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/nbutton23/zxcvbn-go"
	"github.com/rs/zerolog/log"
	"math"
	"net/http"
	"pwd-strength/internal/util"
	"pwd-strength/pkg/generator"
	"pwd-strength/pkg/hibp"
	"pwd-strength/pkg/strength"
	"time"
)

const defaultGenerateLength = 16

type Options struct {
	Estimator *strength.Estimator
	Generator *generator.Generator
	// Breach lookups are disabled when nil.
	Breach *hibp.Client
}

type strengthApi struct {
	estimator *strength.Estimator
	generator *generator.Generator
	breach    *hibp.Client
	start     time.Time
}

func newStrengthResponse(res strength.Result, candidate string) *strengthResponse {
	resp := &strengthResponse{
		Score:            res.Score,
		Label:            res.Label.String(),
		Criteria:         res.Criteria.Map(),
		CrackTimeDisplay: res.CrackTimeDisplay(),
		Tips:             res.Tips,
	}
	// JSON has no representation for +Inf.
	if res.CrackTimeSeconds != nil && !math.IsInf(*res.CrackTimeSeconds, 0) {
		resp.CrackTimeSeconds = res.CrackTimeSeconds
	}

	if candidate != "" {
		entropy := zxcvbn.PasswordStrength(candidate, nil)
		resp.Zxcvbn = &zxcvbnStrength{
			Score:            entropy.Score,
			CrackTime:        entropy.CrackTime,
			CrackTimeDisplay: entropy.CrackTimeDisplay,
		}
	}
	return resp
}

func (s *strengthApi) checkPassword(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	password := *req.Password
	resp := newStrengthResponse(s.estimator.Evaluate(password), password)

	if req.Pwned {
		if s.breach == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "breach lookups are not enabled on this server"})
			return
		}

		count, err := s.breach.Count(c.Request.Context(), password)
		if err != nil {
			log.Error().Err(err).Msg("error looking up breach corpus")
			c.JSON(http.StatusBadGateway, gin.H{"error": "breach lookup failed"})
			return
		}
		pwned := count > 0
		resp.Pwned = &pwned
		resp.PwnedCount = &count
	}

	c.JSON(http.StatusOK, resp)
}

func flag(v *bool) bool {
	return v == nil || *v
}

func (s *strengthApi) generatePassword(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	length := req.Length
	if length == 0 {
		length = defaultGenerateLength
	}

	classes := generator.Classes{
		Upper:  flag(req.Upper),
		Lower:  flag(req.Lower),
		Digit:  flag(req.Digit),
		Symbol: flag(req.Symbol),
	}

	pwd, err := s.generator.Generate(length, classes)
	if errors.Is(err, generator.ErrNoClassSelected) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		Password: pwd,
		Length:   len(pwd),
		Strength: newStrengthResponse(s.estimator.Evaluate(pwd), pwd),
	})
}

func (s *strengthApi) health(c *gin.Context) {
	resp := healthResponse{
		Status: "ok",
		Uptime: time.Since(s.start).Truncate(time.Second).String(),
		Memory: util.HostMemory(),
	}
	if s.breach != nil {
		st := s.breach.Stats()
		resp.HIBP = &st
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterStrengthApi mounts the check, generate and health endpoints on group.
func RegisterStrengthApi(group *gin.RouterGroup, opts Options) {
	s := &strengthApi{
		estimator: opts.Estimator,
		generator: opts.Generator,
		breach:    opts.Breach,
		start:     time.Now(),
	}
	if s.estimator == nil {
		s.estimator = strength.NewEstimator()
	}
	if s.generator == nil {
		s.generator = generator.New(generator.CryptoSource)
	}

	group.POST("/check/password", s.checkPassword)
	group.POST("/generate", s.generatePassword)
	group.GET("/health", s.health)
}
