package handler

// Draft-07 schemas for the structural validation phase. They check document
// shape, not full GitHub semantics; expression and cross-field checks live
// in the expr package.

const workflowSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["on", "jobs"],
  "properties": {
    "name": {"type": "string"},
    "run-name": {"type": "string"},
    "on": {
      "oneOf": [
        {"type": "string"},
        {"type": "array", "items": {"type": "string"}, "minItems": 1},
        {"type": "object", "minProperties": 1}
      ]
    },
    "permissions": {
      "oneOf": [{"type": "string"}, {"type": "object"}]
    },
    "env": {"type": "object"},
    "concurrency": {
      "oneOf": [{"type": "string"}, {"type": "object", "required": ["group"]}]
    },
    "jobs": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "runs-on": {
            "oneOf": [{"type": "string"}, {"type": "array", "items": {"type": "string"}}]
          },
          "needs": {
            "oneOf": [{"type": "string"}, {"type": "array", "items": {"type": "string"}}]
          },
          "if": {"type": ["string", "boolean"]},
          "steps": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "uses": {"type": "string"},
                "run": {"type": "string"},
                "with": {"type": "object"},
                "env": {"type": "object"}
              }
            }
          },
          "uses": {"type": "string"},
          "strategy": {"type": "object"}
        }
      }
    }
  }
}`

const actionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "runs"],
  "properties": {
    "name": {"type": "string"},
    "description": {"type": "string"},
    "inputs": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "required": {"type": "boolean"},
          "default": {}
        }
      }
    },
    "outputs": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "value": {"type": "string"}
        }
      }
    },
    "runs": {
      "type": "object",
      "required": ["using"],
      "properties": {
        "using": {"type": "string"},
        "main": {"type": "string"},
        "steps": {"type": "array"}
      }
    }
  }
}`

const fundingSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "minProperties": 1,
  "properties": {
    "github": {"oneOf": [{"type": "string"}, {"type": "array", "items": {"type": "string"}, "maxItems": 4}]},
    "patreon": {"type": "string"},
    "open_collective": {"type": "string"},
    "ko_fi": {"type": "string"},
    "tidelift": {"type": "string"},
    "community_bridge": {"type": "string"},
    "liberapay": {"type": "string"},
    "issuehunt": {"type": "string"},
    "lfx_crowdfunding": {"type": "string"},
    "polar": {"type": "string"},
    "buy_me_a_coffee": {"type": "string"},
    "thanks_dev": {"type": "string"},
    "custom": {"oneOf": [{"type": "string"}, {"type": "array", "items": {"type": "string"}}]}
  },
  "additionalProperties": false
}`

const dependabotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "updates"],
  "properties": {
    "version": {"const": 2},
    "registries": {"type": "object"},
    "updates": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["package-ecosystem", "directory", "schedule"],
        "properties": {
          "package-ecosystem": {"type": "string"},
          "directory": {"type": "string"},
          "schedule": {
            "type": "object",
            "required": ["interval"],
            "properties": {
              "interval": {"enum": ["daily", "weekly", "monthly"]}
            }
          }
        }
      }
    }
  }
}`
