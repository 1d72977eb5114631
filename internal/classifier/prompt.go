package classifier

// Prompt instructs the model to return structured JSON matching the
// normalized classification schema. The response MIME type is also pinned
// to application/json in the generation config; the prompt restates the
// constraint because models occasionally wrap output in markdown fences.
const Prompt = `You are a clinical assistant triaging photos of catheter insertion sites.
Examine the image and respond only with valid JSON matching this schema, no markdown fences:
{
  "classification": {
    "label": "red" | "yellow" | "green" | "uncertain",
    "risk_score": <number 0-100>,
    "explanation": "<short clinical rationale>",
    "overall_confidence": <number 0-1>,
    "features": {
      "redness": {"present": <bool>, "extent_percent": <number 0-100>},
      "swelling": {"present": <bool>, "extent_percent": <number 0-100>},
      "dressing_lift": {"present": <bool>},
      "discharge": {"present": <bool>, "type": "<serous|sanguineous|purulent>", "amount": "<none|scant|moderate|copious>"},
      "exposed_catheter": {"present": <bool>},
      "open_wound": {"present": <bool>},
      "bruising": {"present": <bool>},
      "crusting": {"present": <bool>},
      "erythema_border_sharp": {"yes": <bool>},
      "fluctuance": {"present": <bool>}
    }
  },
  "quality": {
    "adequate_lighting": <bool>,
    "focused": <bool>,
    "view_complete": <bool>,
    "notes": "<string>"
  }
}
Label guidance: "red" for urgent findings (purulent discharge, exposed catheter,
open wound, spreading erythema), "yellow" for mild or localized findings worth
monitoring, "green" for a clean healthy site, "uncertain" when the image does
not allow a reliable assessment. Omit any feature you cannot evaluate.`
