package mysql

const upsertAgentSQL = `
INSERT INTO agents (id, name, email)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  name  = VALUES(name),
  email = VALUES(email)
`

const upsertResidenceSQL = `
INSERT INTO residences
  (id, title, price, location, city, bedrooms, bathrooms, surface_area, description, image, type, agent_id)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title        = VALUES(title),
  price        = VALUES(price),
  location     = VALUES(location),
  city         = VALUES(city),
  bedrooms     = VALUES(bedrooms),
  bathrooms    = VALUES(bathrooms),
  surface_area = VALUES(surface_area),
  description  = VALUES(description),
  image        = VALUES(image),
  type         = VALUES(type),
  agent_id     = VALUES(agent_id),
  updated_at   = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const residenceColumns = `
  r.id, r.title, r.price, r.location, r.city, r.bedrooms, r.bathrooms,
  r.surface_area, r.description, r.image, r.type, r.agent_id`

const getResidenceSQL = `SELECT` + residenceColumns + `
FROM residences r
WHERE r.id = ?
`

// Agent columns are NULL when the residence has no agent (or it was deleted).
const findResidenceWithAgentSQL = `SELECT` + residenceColumns + `,
  a.id, a.name, a.email
FROM residences r
LEFT JOIN agents a ON a.id = r.agent_id
WHERE r.id = ?
`

// listResidencesSQL is completed by buildListQuery with optional WHERE clauses.
const listResidencesSQL = `SELECT` + residenceColumns + `
FROM residences r`
