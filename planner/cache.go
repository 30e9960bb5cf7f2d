//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package planner

import (
	"github.com/couchbase/docquery/logging"
	"github.com/dgraph-io/ristretto"
)

/*
The plan chosen for a query shape; queries with an equal QueryPattern
reuse it instead of re-ranking candidate indexes.
*/
type CachedPlan struct {
	IndexName string
	Direction int
}

/*
PlanCache maps QueryPattern fingerprints to cached plans.
*/
type PlanCache struct {
	cache *ristretto.Cache
}

func NewPlanCache() (*PlanCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 16,
		MaxCost:     1 << 12,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &PlanCache{cache: cache}, nil
}

func (this *PlanCache) Get(pattern QueryPattern) (CachedPlan, bool) {
	v, ok := this.cache.Get(pattern.Fingerprint())
	if !ok {
		return CachedPlan{}, false
	}
	plan, ok := v.(CachedPlan)
	return plan, ok
}

func (this *PlanCache) Put(pattern QueryPattern, plan CachedPlan) {
	if !this.cache.Set(pattern.Fingerprint(), plan, 1) {
		logging.Debugf("plan cache rejected entry for index %s", plan.IndexName)
	}
}

// Wait flushes pending sets; only tests need deterministic visibility.
func (this *PlanCache) Wait() {
	this.cache.Wait()
}

func (this *PlanCache) Close() {
	this.cache.Close()
}
